package entity

import (
	"context"

	"github.com/spinmall/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&LotteryType{},
		&LotteryActivity{},
		&LotteryRecord{},
		&LotteryParticipation{},
		&PointLog{},
		&Banner{},
		&Application{},
		&Product{},
		&ExchangeOrder{},
	)
}
