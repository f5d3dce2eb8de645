package entity

import "github.com/spinmall/backend/pkg/enum"

type PointReason string

var (
	PointReasonLotteryCost = enum.New(PointReason("lottery_cost"))
	PointReasonLotteryWin  = enum.New(PointReason("lottery_win"))
	PointReasonExchange    = enum.New(PointReason("exchange"))
	PointReasonAdminAdjust = enum.New(PointReason("admin_adjust"))
)

// PointLog is the points ledger. Entries are append-only: every change of a
// user's balance writes exactly one entry carrying the signed delta and the
// balance right after the delta was applied. Summing a user's deltas in id
// order always reproduces the current balance.
type PointLog struct {
	SnowFlakeBase

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Points  int64
	Balance int64

	Reason PointReason

	RelatedID   string
	RelatedType string
	Description string

	OperatorID string
	IPAddress  string
}
