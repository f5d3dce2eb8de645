package model

import "time"

type Banner struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Image     string     `json:"image"`
	LinkURL   string     `json:"link_url,omitempty"`
	Position  string     `json:"position"`
	SortOrder int        `json:"sort_order"`
	IsActive  bool       `json:"is_active"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	ViewCount  int64     `json:"view_count"`
	ClickCount int64     `json:"click_count"`
}

type CreateBannerRequest struct {
	Title     string     `json:"title"`
	Image     string     `json:"image"`
	LinkURL   string     `json:"link_url"`
	Position  string     `json:"position"`
	SortOrder int        `json:"sort_order"`
	IsActive  bool       `json:"is_active"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

type CreateBannerResponse struct {
	ID string `json:"id"`
}

type GetBannersRequest struct {
	Position string `json:"position" form:"position"`
}

type GetBannersResponse struct {
	Banners []Banner `json:"banners"`
}

type ClickBannerRequest struct {
	ID string `json:"id"`
}

type ClickBannerResponse struct{}

type DeleteBannerRequest struct {
	ID string `json:"id"`
}

type DeleteBannerResponse struct{}
