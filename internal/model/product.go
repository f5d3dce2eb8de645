package model

import "time"

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	PointsPrice int64  `json:"points_price"`
	Stock       int    `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

type ExchangeOrder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	PointsPrice int64     `json:"points_price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	PointsPrice int64  `json:"points_price"`
	Stock       int    `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

type CreateProductResponse struct {
	ID string `json:"id"`
}

type GetProductsRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetProductsResponse struct {
	Products []Product `json:"products"`
}

type ExchangeProductRequest struct {
	ProductID string `json:"product_id"`
}

type ExchangeProductResponse struct {
	Order ExchangeOrder `json:"order"`
}

type GetMyExchangeOrdersRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetMyExchangeOrdersResponse struct {
	Orders []ExchangeOrder `json:"orders"`
}
