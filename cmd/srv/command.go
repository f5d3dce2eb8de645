package main

import (
	"github.com/urfave/cli/v2"
)

func (s *srv) run(args []string) error {
	app := &cli.App{
		Name:  "spinmall",
		Usage: "points and lottery backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a toml config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "run the api server",
				Action: s.startApi,
			},
			{
				Name:   "migrate",
				Usage:  "run the database migration and exit",
				Action: s.migrate,
			},
		},
	}

	return app.Run(args)
}
