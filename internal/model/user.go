package model

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Points      int64  `json:"points"`
	TotalPoints int64  `json:"total_points"`
	UsedPoints  int64  `json:"used_points"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type AdjustPointsRequest struct {
	UserID      string `json:"user_id"`
	Points      int64  `json:"points"`
	Description string `json:"description"`
}

type AdjustPointsResponse struct {
	Balance int64 `json:"balance"`
}
