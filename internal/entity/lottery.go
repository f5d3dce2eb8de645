package entity

import (
	"database/sql"
	"time"

	"github.com/spinmall/backend/pkg/enum"
)

type PrizeType string

var (
	PrizeTypePoints   = enum.New(PrizeType("points"))
	PrizeTypePhysical = enum.New(PrizeType("physical"))
	PrizeTypeCoupon   = enum.New(PrizeType("coupon"))
	PrizeTypeNone     = enum.New(PrizeType("none"))
)

type LotteryType struct {
	Base

	Name        string
	Code        string `gorm:"unique"`
	Description string
	Icon        string
}

// LotteryPrize is one row of an activity's prize table. The table is stored
// as a json column but always through this schema, never as a free-form
// document; ValidatePrizeTable rejects malformed tables before they are
// persisted.
type LotteryPrize struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Type   PrizeType `json:"type"`
	Amount int64     `json:"amount"`
	Image  string    `json:"image"`
	Weight float64   `json:"weight"`
	IsWin  bool      `json:"is_win"`
}

type LotteryActivity struct {
	Base

	Title       string
	Description string
	BannerImage string

	LotteryTypeID string
	LotteryType   LotteryType `gorm:"foreignKey:LotteryTypeID"`

	StartTime time.Time
	EndTime   sql.NullTime
	IsActive  bool

	// Zero means unlimited.
	DailyLimit int
	TotalLimit int

	PointsCost int64

	Prizes Array[LotteryPrize]
}

// LotteryRecord is the audit trail of one draw. Rows are immutable once
// created; only IsExchanged/ExchangeTime may change when a physical prize is
// fulfilled.
type LotteryRecord struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	ActivityID string
	Activity   LotteryActivity `gorm:"foreignKey:ActivityID"`

	// PrizeID is null for a no-prize outcome.
	PrizeID     sql.NullString
	PrizeName   string
	PrizeType   PrizeType
	PrizeAmount int64
	PrizeImage  string
	IsWin       bool

	PointsCost int64

	IsExchanged  bool
	ExchangeTime sql.NullTime

	IPAddress string
	UserAgent string
}

// LotteryParticipation counts one user's draws in one activity. The counters
// advance through a guarded UPDATE inside the settlement transaction, which
// is what makes daily/total limits exact when draws race each other.
type LotteryParticipation struct {
	Base

	UserID     string `gorm:"uniqueIndex:idx_participation_user_activity"`
	ActivityID string `gorm:"uniqueIndex:idx_participation_user_activity"`

	TotalCount int
	DailyCount int
	DailyDay   string
}
