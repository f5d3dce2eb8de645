package domain

import (
	"testing"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/testutil"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

// Drives a mixed sequence of draws, exchanges, and admin adjustments, then
// checks that the ledger replays exactly to the final balance.
func TestLedgerReconciliation(t *testing.T) {
	ctx := testutil.MockContext(t)

	userRepo := repository.NewUserRepository()
	pointLogRepo := repository.NewPointLogRepository()
	lottery := NewLotteryDomain(repository.NewLotteryRepository(nil), userRepo, pointLogRepo)
	product := NewProductDomain(repository.NewProductRepository(), userRepo, pointLogRepo)
	users := NewUserDomain(userRepo, pointLogRepo)

	admin := testutil.SeedAdmin(t, ctx, "root")
	user := testutil.SeedUser(t, ctx, "alice", 500)

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	activity := testutil.SeedActivity(t, ctx, 50, []entity.LotteryPrize{
		testutil.WinPrize("twenty", 20, 1),
	})
	lottery.rollFn = func() float64 { return 0 }

	mug := &entity.Product{
		Base:        entity.Base{ID: "mug"},
		Name:        "Mug",
		PointsPrice: 80,
		Stock:       -1,
		IsActive:    true,
	}
	require.NoError(t, xcontext.DB(ctx).Create(mug).Error)

	for i := 0; i < 2; i++ {
		_, err := lottery.Draw(userCtx, &model.DrawLotteryRequest{ActivityID: activity.ID})
		require.NoError(t, err)
	}

	_, err := product.Exchange(userCtx, &model.ExchangeProductRequest{ProductID: mug.ID})
	require.NoError(t, err)

	_, err = users.AdjustPoints(adminCtx, &model.AdjustPointsRequest{
		UserID: user.ID,
		Points: 100,
	})
	require.NoError(t, err)

	_, err = users.AdjustPoints(adminCtx, &model.AdjustPointsRequest{
		UserID: user.ID,
		Points: -40,
	})
	require.NoError(t, err)

	// 500 - 2*(50-20) - 80 + 100 - 40.
	fresh, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(420), fresh.Points)

	sum, err := pointLogRepo.SumByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, fresh.Points, 500+sum)

	// Every snapshot equals the balance running in creation order.
	logs, err := pointLogRepo.GetByUserID(ctx, user.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, logs, 7)

	running := int64(500)
	for i := len(logs) - 1; i >= 0; i-- {
		running += logs[i].Points
		require.Equal(t, running, logs[i].Balance)
	}
	require.Equal(t, fresh.Points, running)
}
