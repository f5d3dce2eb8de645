package entity

import "database/sql"

type Banner struct {
	Base

	Title    string
	Image    string
	LinkURL  string
	Position string

	SortOrder int
	IsActive  bool

	StartTime sql.NullTime
	EndTime   sql.NullTime

	ViewCount  int64
	ClickCount int64
}
