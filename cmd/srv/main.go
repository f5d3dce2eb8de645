package main

import (
	"os"
)

func main() {
	server := &srv{}
	if err := server.run(os.Args); err != nil {
		panic(err)
	}
}
