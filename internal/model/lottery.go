package model

import "time"

type LotteryType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type LotteryPrize struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Amount int64   `json:"amount"`
	Image  string  `json:"image,omitempty"`
	Weight float64 `json:"weight"`
	IsWin  bool    `json:"is_win"`
}

type LotteryActivity struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	BannerImage string         `json:"banner_image,omitempty"`
	LotteryType LotteryType    `json:"lottery_type"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     *time.Time     `json:"end_time,omitempty"`
	IsActive    bool           `json:"is_active"`
	DailyLimit  int            `json:"daily_limit"`
	TotalLimit  int            `json:"total_limit"`
	PointsCost  int64          `json:"points_cost"`
	Prizes      []LotteryPrize `json:"prizes"`
}

type LotteryRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ActivityID  string    `json:"activity_id"`
	PrizeID     string    `json:"prize_id,omitempty"`
	PrizeName   string    `json:"prize_name,omitempty"`
	PrizeType   string    `json:"prize_type,omitempty"`
	PrizeAmount int64     `json:"prize_amount"`
	PrizeImage  string    `json:"prize_image,omitempty"`
	IsWin       bool      `json:"is_win"`
	PointsCost  int64     `json:"points_cost"`
	IsExchanged bool      `json:"is_exchanged"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateLotteryTypeRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CreateLotteryTypeResponse struct {
	ID string `json:"id"`
}

type GetLotteryTypesRequest struct{}

type GetLotteryTypesResponse struct {
	Types []LotteryType `json:"types"`
}

type CreateLotteryActivityRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	BannerImage   string         `json:"banner_image"`
	LotteryTypeID string         `json:"lottery_type_id"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       *time.Time     `json:"end_time"`
	IsActive      bool           `json:"is_active"`
	DailyLimit    int            `json:"daily_limit"`
	TotalLimit    int            `json:"total_limit"`
	PointsCost    int64          `json:"points_cost"`
	Prizes        []LotteryPrize `json:"prizes"`
}

type CreateLotteryActivityResponse struct {
	ID string `json:"id"`
}

type UpdateLotteryActivityRequest struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	BannerImage string         `json:"banner_image"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	IsActive    bool           `json:"is_active"`
	DailyLimit  int            `json:"daily_limit"`
	TotalLimit  int            `json:"total_limit"`
	PointsCost  int64          `json:"points_cost"`
	Prizes      []LotteryPrize `json:"prizes"`
}

type UpdateLotteryActivityResponse struct{}

type DeleteLotteryActivityRequest struct {
	ID string `json:"id"`
}

type DeleteLotteryActivityResponse struct{}

type GetLotteryActivitiesRequest struct {
	ActiveOnly bool `json:"active_only" form:"active_only"`
	Offset     int  `json:"offset" form:"offset"`
	Limit      int  `json:"limit" form:"limit"`
}

type GetLotteryActivitiesResponse struct {
	Activities []LotteryActivity `json:"activities"`
}

type GetLotteryActivityRequest struct {
	ID string `json:"id" form:"id"`
}

type GetLotteryActivityResponse struct {
	Activity LotteryActivity `json:"activity"`
}

type DrawLotteryRequest struct {
	ActivityID string `json:"activity_id"`
}

type DrawLotteryResponse struct {
	Record LotteryRecord `json:"record"`
}

type GetMyLotteryRecordsRequest struct {
	ActivityID string `json:"activity_id" form:"activity_id"`
	Offset     int    `json:"offset" form:"offset"`
	Limit      int    `json:"limit" form:"limit"`
}

type GetMyLotteryRecordsResponse struct {
	Records []LotteryRecord `json:"records"`
}

type GetLotteryActivityRecordsRequest struct {
	ActivityID string `json:"activity_id" form:"activity_id"`
	Offset     int    `json:"offset" form:"offset"`
	Limit      int    `json:"limit" form:"limit"`
}

type GetLotteryActivityRecordsResponse struct {
	Records []LotteryRecord `json:"records"`
}
