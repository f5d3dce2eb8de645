package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/testutil"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestLotteryDomain() (*lotteryDomain, repository.UserRepository, repository.PointLogRepository) {
	userRepo := repository.NewUserRepository()
	pointLogRepo := repository.NewPointLogRepository()
	lotteryRepo := repository.NewLotteryRepository(nil)
	return NewLotteryDomain(lotteryRepo, userRepo, pointLogRepo), userRepo, pointLogRepo
}

func TestDrawEligibilityGates(t *testing.T) {
	ctx := testutil.MockContext(t)
	d, _, _ := newTestLotteryDomain()

	user := testutil.SeedUser(t, ctx, "alice", 100)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	prizes := []entity.LotteryPrize{testutil.LosePrize("miss", 1)}
	activity := testutil.SeedActivity(t, ctx, 30, prizes)

	// Inactive wins over every other failure.
	activity.IsActive = false
	activity.StartTime = time.Now().Add(time.Hour)
	testutil.SaveActivity(t, ctx, activity)
	_, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	requireErrorCode(t, err, errorx.ActivityInactive)

	activity.IsActive = true
	testutil.SaveActivity(t, ctx, activity)
	_, err = d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	requireErrorCode(t, err, errorx.ActivityNotStarted)

	activity.StartTime = time.Now().Add(-2 * time.Hour)
	activity.EndTime = testutil.EndedAt(time.Now().Add(-time.Hour))
	testutil.SaveActivity(t, ctx, activity)
	_, err = d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	requireErrorCode(t, err, errorx.ActivityEnded)

	activity.EndTime = testutil.EndedAt(time.Now().Add(time.Hour))
	activity.PointsCost = 101
	testutil.SaveActivity(t, ctx, activity)
	_, err = d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	requireErrorCode(t, err, errorx.InsufficientPoints)

	_, err = d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: "no-such-activity"})
	requireErrorCode(t, err, errorx.NotFound)
}

func TestDrawSettlesPointsAndLedger(t *testing.T) {
	ctx := testutil.MockContext(t)
	d, userRepo, pointLogRepo := newTestLotteryDomain()

	user := testutil.SeedUser(t, ctx, "alice", 100)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	activity := testutil.SeedActivity(t, ctx, 30, []entity.LotteryPrize{
		testutil.WinPrize("fifty", 50, 1),
	})

	d.rollFn = func() float64 { return 0 }
	resp, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	require.NoError(t, err)
	require.True(t, resp.Record.IsWin)
	require.Equal(t, "fifty", resp.Record.PrizeID)
	require.Equal(t, int64(50), resp.Record.PrizeAmount)
	require.Equal(t, int64(30), resp.Record.PointsCost)

	fresh, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(120), fresh.Points)
	require.Equal(t, int64(150), fresh.TotalPoints)
	require.Equal(t, int64(30), fresh.UsedPoints)

	logs, err := pointLogRepo.GetByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first: the win credit follows the cost debit.
	require.Equal(t, entity.PointReasonLotteryWin, logs[0].Reason)
	require.Equal(t, int64(50), logs[0].Points)
	require.Equal(t, int64(120), logs[0].Balance)
	require.Equal(t, entity.PointReasonLotteryCost, logs[1].Reason)
	require.Equal(t, int64(-30), logs[1].Points)
	require.Equal(t, int64(70), logs[1].Balance)
	require.Equal(t, activity.ID, logs[1].RelatedID)
}

func TestDrawZeroCostWritesNoLedgerEntry(t *testing.T) {
	ctx := testutil.MockContext(t)
	d, userRepo, pointLogRepo := newTestLotteryDomain()

	user := testutil.SeedUser(t, ctx, "alice", 100)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	activity := testutil.SeedActivity(t, ctx, 0, []entity.LotteryPrize{
		testutil.LosePrize("miss", 1),
	})

	resp, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	require.NoError(t, err)
	require.False(t, resp.Record.IsWin)
	require.Empty(t, resp.Record.PrizeID)

	fresh, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), fresh.Points)

	logs, err := pointLogRepo.GetByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestDrawPhysicalPrizeDoesNotCreditPoints(t *testing.T) {
	ctx := testutil.MockContext(t)
	d, userRepo, pointLogRepo := newTestLotteryDomain()

	user := testutil.SeedUser(t, ctx, "alice", 100)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	activity := testutil.SeedActivity(t, ctx, 30, []entity.LotteryPrize{
		testutil.PhysicalPrize("bear", 1),
	})

	resp, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	require.NoError(t, err)
	require.True(t, resp.Record.IsWin)
	require.Equal(t, string(entity.PrizeTypePhysical), resp.Record.PrizeType)

	fresh, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(70), fresh.Points)

	logs, err := pointLogRepo.GetByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, entity.PointReasonLotteryCost, logs[0].Reason)
}

func TestDrawDailyLimit(t *testing.T) {
	ctx := testutil.MockContext(t)
	d, _, _ := newTestLotteryDomain()

	user := testutil.SeedUser(t, ctx, "alice", 100)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	activity := testutil.SeedActivity(t, ctx, 0, []entity.LotteryPrize{
		testutil.LosePrize("miss", 1),
	})
	activity.DailyLimit = 2
	testutil.SaveActivity(t, ctx, activity)

	for i := 0; i < 2; i++ {
		_, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
		require.NoError(t, err)
	}

	_, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	requireErrorCode(t, err, errorx.DailyLimitReached)
}

func TestDrawTotalLimit(t *testing.T) {
	ctx := testutil.MockContext(t)
	d, _, _ := newTestLotteryDomain()

	user := testutil.SeedUser(t, ctx, "alice", 100)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	activity := testutil.SeedActivity(t, ctx, 0, []entity.LotteryPrize{
		testutil.LosePrize("miss", 1),
	})
	activity.TotalLimit = 1
	testutil.SaveActivity(t, ctx, activity)

	_, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	require.NoError(t, err)

	_, err = d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	requireErrorCode(t, err, errorx.TotalLimitReached)
}

type recordFailingLotteryRepo struct {
	repository.LotteryRepository
}

func (r recordFailingLotteryRepo) CreateRecord(
	ctx context.Context, record *entity.LotteryRecord,
) error {
	return errors.New("storage failure")
}

func TestDrawRollsBackOnRecordFailure(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	pointLogRepo := repository.NewPointLogRepository()
	lotteryRepo := recordFailingLotteryRepo{repository.NewLotteryRepository(nil)}
	d := NewLotteryDomain(lotteryRepo, userRepo, pointLogRepo)

	user := testutil.SeedUser(t, ctx, "alice", 100)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	activity := testutil.SeedActivity(t, ctx, 30, []entity.LotteryPrize{
		testutil.WinPrize("fifty", 50, 1),
	})

	_, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
	requireErrorCode(t, err, errorx.Unknown.Code)

	// Nothing of the aborted settlement may remain visible.
	fresh, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), fresh.Points)

	logs, err := pointLogRepo.GetByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestDrawConcurrentRespectsDailyLimit(t *testing.T) {
	ctx := testutil.MockContext(t)
	d, userRepo, pointLogRepo := newTestLotteryDomain()

	user := testutil.SeedUser(t, ctx, "alice", 1000)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	activity := testutil.SeedActivity(t, ctx, 10, []entity.LotteryPrize{
		testutil.LosePrize("miss", 1),
	})
	activity.DailyLimit = 3
	testutil.SaveActivity(t, ctx, activity)

	var group errgroup.Group
	results := make([]error, 10)
	for i := 0; i < 10; i++ {
		i := i
		group.Go(func() error {
			_, err := d.Draw(ctx, &model.DrawLotteryRequest{ActivityID: activity.ID})
			results[i] = err
			return nil
		})
	}
	require.NoError(t, group.Wait())

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}

		var xerr errorx.Error
		require.ErrorAs(t, err, &xerr)
		require.Contains(t,
			[]errorx.Code{errorx.DailyLimitReached, errorx.TooManyRequests}, xerr.Code)
	}
	require.Equal(t, 3, successes)

	// Exactly the successful draws were charged, and the ledger replays to
	// the current balance.
	fresh, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(970), fresh.Points)

	sum, err := pointLogRepo.SumByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, fresh.Points, 1000+sum)

	logs, err := pointLogRepo.GetByUserID(ctx, user.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	require.Equal(t, fresh.Points, logs[0].Balance)
}

func TestActivityAdminLifecycle(t *testing.T) {
	ctx := testutil.MockContext(t)
	d, _, _ := newTestLotteryDomain()

	admin := testutil.SeedAdmin(t, ctx, "root")
	user := testutil.SeedUser(t, ctx, "alice", 0)

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)

	_, err := d.CreateType(userCtx, &model.CreateLotteryTypeRequest{Name: "Wheel", Code: "wheel"})
	requireErrorCode(t, err, errorx.PermissionDenied)

	typeResp, err := d.CreateType(adminCtx, &model.CreateLotteryTypeRequest{Name: "Wheel", Code: "wheel"})
	require.NoError(t, err)

	createReq := &model.CreateLotteryActivityRequest{
		Title:         "Daily Spin",
		LotteryTypeID: typeResp.ID,
		StartTime:     time.Now().Add(-time.Hour),
		IsActive:      true,
		PointsCost:    10,
		Prizes: []model.LotteryPrize{
			{Name: "Miss", Type: string(entity.PrizeTypeNone), Weight: 1},
		},
	}

	created, err := d.CreateActivity(adminCtx, createReq)
	require.NoError(t, err)

	badReq := *createReq
	badReq.Prizes = []model.LotteryPrize{{Name: "Broken", Type: "car", Weight: 1}}
	_, err = d.CreateActivity(adminCtx, &badReq)
	requireErrorCode(t, err, errorx.InvalidPrizeTable)

	got, err := d.GetActivity(ctx, &model.GetLotteryActivityRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "Daily Spin", got.Activity.Title)
	require.Len(t, got.Activity.Prizes, 1)

	_, err = d.UpdateActivity(adminCtx, &model.UpdateLotteryActivityRequest{
		ID:        created.ID,
		Title:     "Weekend Spin",
		StartTime: time.Now().Add(-time.Hour),
		IsActive:  false,
		Prizes: []model.LotteryPrize{
			{Name: "Miss", Type: string(entity.PrizeTypeNone), Weight: 1},
		},
	})
	require.NoError(t, err)

	got, err = d.GetActivity(ctx, &model.GetLotteryActivityRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "Weekend Spin", got.Activity.Title)
	require.False(t, got.Activity.IsActive)

	_, err = d.DeleteActivity(adminCtx, &model.DeleteLotteryActivityRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = d.GetActivity(ctx, &model.GetLotteryActivityRequest{ID: created.ID})
	requireErrorCode(t, err, errorx.NotFound)
}
