package entity

type Application struct {
	Base

	Name        string
	Description string
	Icon        string
	LinkURL     string
	Category    string

	SortOrder int
	IsActive  bool

	ViewCount  int64
	ClickCount int64
}
