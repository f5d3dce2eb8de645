package model

import "time"

type PointLog struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Points      int64     `json:"points"`
	Balance     int64     `json:"balance"`
	Reason      string    `json:"reason"`
	RelatedID   string    `json:"related_id,omitempty"`
	RelatedType string    `json:"related_type,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GetMyPointLogsRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetMyPointLogsResponse struct {
	Logs    []PointLog `json:"logs"`
	Balance int64      `json:"balance"`
}
