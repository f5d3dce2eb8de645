package repository

import (
	"testing"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/testutil"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestActivityCache(t *testing.T) {
	ctx := testutil.MockContext(t)
	repo := NewLotteryRepository(testutil.NewMockRedisClient())

	activity := testutil.SeedActivity(t, ctx, 10, []entity.LotteryPrize{
		testutil.LosePrize("miss", 1),
	})

	got, err := repo.GetCachedActivityByID(ctx, activity.ID)
	require.NoError(t, err)
	require.Equal(t, "Daily Spin", got.Title)

	// A direct database change is invisible until the cache is invalidated.
	err = xcontext.DB(ctx).Model(activity).Update("title", "Changed").Error
	require.NoError(t, err)

	got, err = repo.GetCachedActivityByID(ctx, activity.ID)
	require.NoError(t, err)
	require.Equal(t, "Daily Spin", got.Title)

	activity.Title = "Changed"
	require.NoError(t, repo.UpdateActivity(ctx, activity))

	got, err = repo.GetCachedActivityByID(ctx, activity.ID)
	require.NoError(t, err)
	require.Equal(t, "Changed", got.Title)
}

func TestCheckAndCountDraw(t *testing.T) {
	ctx := testutil.MockContext(t)
	repo := NewLotteryRepository(nil)

	user := testutil.SeedUser(t, ctx, "alice", 0)
	activity := testutil.SeedActivity(t, ctx, 0, []entity.LotteryPrize{
		testutil.LosePrize("miss", 1),
	})

	day := "2026-08-29"
	for i := 0; i < 2; i++ {
		err := repo.CheckAndCountDraw(ctx, user.ID, activity.ID, day, 0, 2)
		require.NoError(t, err)
	}

	err := repo.CheckAndCountDraw(ctx, user.ID, activity.ID, day, 0, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// A new day resets the daily counter but keeps the running total.
	nextDay := "2026-08-30"
	require.NoError(t, repo.CheckAndCountDraw(ctx, user.ID, activity.ID, nextDay, 0, 2))

	participation, err := repo.GetParticipation(ctx, user.ID, activity.ID)
	require.NoError(t, err)
	require.Equal(t, 3, participation.TotalCount)
	require.Equal(t, 1, participation.DailyCount)
	require.Equal(t, nextDay, participation.DailyDay)

	// The running total still gates draws across days.
	err = repo.CheckAndCountDraw(ctx, user.ID, activity.ID, nextDay, 3, 0)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
