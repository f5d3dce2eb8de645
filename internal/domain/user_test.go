package domain

import (
	"testing"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/testutil"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestGetMe(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := NewUserDomain(repository.NewUserRepository(), repository.NewPointLogRepository())

	_, err := d.GetMe(ctx, &model.GetMeRequest{})
	requireErrorCode(t, err, errorx.Unauthenticated)

	user := testutil.SeedUser(t, ctx, "alice", 42)
	resp, err := d.GetMe(xcontext.WithRequestUserID(ctx, user.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, "alice", resp.User.Name)
	require.Equal(t, int64(42), resp.User.Points)
}

func TestAdjustPoints(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	pointLogRepo := repository.NewPointLogRepository()
	d := NewUserDomain(userRepo, pointLogRepo)

	admin := testutil.SeedAdmin(t, ctx, "root")
	user := testutil.SeedUser(t, ctx, "alice", 100)

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)

	_, err := d.AdjustPoints(userCtx, &model.AdjustPointsRequest{UserID: user.ID, Points: 10})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = d.AdjustPoints(adminCtx, &model.AdjustPointsRequest{UserID: user.ID, Points: 0})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.AdjustPoints(adminCtx, &model.AdjustPointsRequest{UserID: "nobody", Points: 10})
	requireErrorCode(t, err, errorx.NotFound)

	resp, err := d.AdjustPoints(adminCtx, &model.AdjustPointsRequest{
		UserID:      user.ID,
		Points:      50,
		Description: "event reward",
	})
	require.NoError(t, err)
	require.Equal(t, int64(150), resp.Balance)

	_, err = d.AdjustPoints(adminCtx, &model.AdjustPointsRequest{UserID: user.ID, Points: -1000})
	requireErrorCode(t, err, errorx.InsufficientPoints)

	resp, err = d.AdjustPoints(adminCtx, &model.AdjustPointsRequest{UserID: user.ID, Points: -30})
	require.NoError(t, err)
	require.Equal(t, int64(120), resp.Balance)

	logs, err := pointLogRepo.GetByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, entity.PointReasonAdminAdjust, logs[0].Reason)
	require.Equal(t, int64(-30), logs[0].Points)
	require.Equal(t, int64(120), logs[0].Balance)
	require.Equal(t, admin.ID, logs[0].OperatorID)
}

func TestGetMyPointLogs(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	pointLogRepo := repository.NewPointLogRepository()
	userDomain := NewUserDomain(userRepo, pointLogRepo)
	pointDomain := NewPointDomain(userRepo, pointLogRepo)

	admin := testutil.SeedAdmin(t, ctx, "root")
	user := testutil.SeedUser(t, ctx, "alice", 0)

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	for _, points := range []int64{10, 20, 30} {
		_, err := userDomain.AdjustPoints(adminCtx, &model.AdjustPointsRequest{
			UserID: user.ID,
			Points: points,
		})
		require.NoError(t, err)
	}

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	resp, err := pointDomain.GetMyLogs(userCtx, &model.GetMyPointLogsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(60), resp.Balance)
	require.Len(t, resp.Logs, 3)

	// Newest first, with the running balance replaying the history.
	require.Equal(t, int64(30), resp.Logs[0].Points)
	require.Equal(t, int64(60), resp.Logs[0].Balance)
	require.Equal(t, int64(10), resp.Logs[2].Points)
	require.Equal(t, int64(10), resp.Logs[2].Balance)

	paged, err := pointDomain.GetMyLogs(userCtx, &model.GetMyPointLogsRequest{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, paged.Logs, 1)
	require.Equal(t, int64(20), paged.Logs[0].Points)

	_, err = pointDomain.GetMyLogs(userCtx, &model.GetMyPointLogsRequest{Limit: 1000})
	requireErrorCode(t, err, errorx.BadRequest)
}
