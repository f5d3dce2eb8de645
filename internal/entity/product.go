package entity

import "github.com/spinmall/backend/pkg/enum"

type Product struct {
	Base

	Name        string
	Description string
	Image       string

	PointsPrice int64

	// Zero stock means sold out; use a negative value for unlimited stock.
	Stock    int
	IsActive bool
}

type ExchangeStatus string

var (
	ExchangePending   = enum.New(ExchangeStatus("pending"))
	ExchangeDelivered = enum.New(ExchangeStatus("delivered"))
	ExchangeCancelled = enum.New(ExchangeStatus("cancelled"))
)

type ExchangeOrder struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	ProductID string
	Product   Product `gorm:"foreignKey:ProductID"`

	PointsPrice int64
	Status      ExchangeStatus

	IPAddress string
}
