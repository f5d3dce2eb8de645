package model

type Application struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	LinkURL     string `json:"link_url"`
	Category    string `json:"category,omitempty"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
	ViewCount   int64  `json:"view_count"`
	ClickCount  int64  `json:"click_count"`
}

type CreateApplicationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	LinkURL     string `json:"link_url"`
	Category    string `json:"category"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}

type CreateApplicationResponse struct {
	ID string `json:"id"`
}

type GetApplicationsRequest struct {
	Category string `json:"category" form:"category"`
}

type GetApplicationsResponse struct {
	Applications []Application `json:"applications"`
}

type ClickApplicationRequest struct {
	ID string `json:"id"`
}

type ClickApplicationResponse struct{}

type DeleteApplicationRequest struct {
	ID string `json:"id"`
}

type DeleteApplicationResponse struct{}
