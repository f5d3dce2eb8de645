package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func SeedUser(t *testing.T, ctx context.Context, name string, points int64) *entity.User {
	user := &entity.User{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        name,
		Role:        entity.RoleUser,
		Points:      points,
		TotalPoints: points,
	}

	require.NoError(t, xcontext.DB(ctx).Create(user).Error)
	return user
}

func SeedAdmin(t *testing.T, ctx context.Context, name string) *entity.User {
	user := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: name,
		Role: entity.RoleAdmin,
	}

	require.NoError(t, xcontext.DB(ctx).Create(user).Error)
	return user
}

func SeedLotteryType(t *testing.T, ctx context.Context) *entity.LotteryType {
	lotteryType := &entity.LotteryType{
		Base: entity.Base{ID: uuid.NewString()},
		Name: "Wheel",
		Code: "wheel-" + uuid.NewString()[:8],
	}

	require.NoError(t, xcontext.DB(ctx).Create(lotteryType).Error)
	return lotteryType
}

// SeedActivity creates a running activity with the given prize table. Callers
// tweak the returned entity and save it again when a test needs an edge case.
func SeedActivity(
	t *testing.T, ctx context.Context,
	pointsCost int64, prizes []entity.LotteryPrize,
) *entity.LotteryActivity {
	lotteryType := SeedLotteryType(t, ctx)
	activity := &entity.LotteryActivity{
		Base:          entity.Base{ID: uuid.NewString()},
		Title:         "Daily Spin",
		LotteryTypeID: lotteryType.ID,
		StartTime:     time.Now().Add(-time.Hour),
		IsActive:      true,
		PointsCost:    pointsCost,
		Prizes:        prizes,
	}

	require.NoError(t, xcontext.DB(ctx).Create(activity).Error)
	return activity
}

func SaveActivity(t *testing.T, ctx context.Context, activity *entity.LotteryActivity) {
	require.NoError(t, xcontext.DB(ctx).Save(activity).Error)
}

func EndedAt(at time.Time) sql.NullTime {
	return sql.NullTime{Time: at, Valid: true}
}

// WinPrize and LosePrize are building blocks for prize tables in tests.
func WinPrize(id string, amount int64, weight float64) entity.LotteryPrize {
	return entity.LotteryPrize{
		ID:     id,
		Name:   "Points " + id,
		Type:   entity.PrizeTypePoints,
		Amount: amount,
		Weight: weight,
		IsWin:  true,
	}
}

func LosePrize(id string, weight float64) entity.LotteryPrize {
	return entity.LotteryPrize{
		ID:     id,
		Name:   "Miss " + id,
		Type:   entity.PrizeTypeNone,
		Weight: weight,
	}
}

func PhysicalPrize(id string, weight float64) entity.LotteryPrize {
	return entity.LotteryPrize{
		ID:     id,
		Name:   "Gift " + id,
		Type:   entity.PrizeTypePhysical,
		Weight: weight,
		IsWin:  true,
	}
}
