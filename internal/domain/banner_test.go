package domain

import (
	"testing"
	"time"

	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/testutil"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestBannerVisibility(t *testing.T) {
	ctx := testutil.MockContext(t)
	bannerRepo := repository.NewBannerRepository()
	d := NewBannerDomain(bannerRepo, repository.NewUserRepository())

	admin := testutil.SeedAdmin(t, ctx, "root")
	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)

	_, err := d.Create(adminCtx, &model.CreateBannerRequest{Title: "Home", Image: ""})
	requireErrorCode(t, err, errorx.BadRequest)

	current, err := d.Create(adminCtx, &model.CreateBannerRequest{
		Title:    "Current",
		Image:    "current.png",
		Position: "home",
		IsActive: true,
	})
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	_, err = d.Create(adminCtx, &model.CreateBannerRequest{
		Title:     "Scheduled",
		Image:     "scheduled.png",
		Position:  "home",
		IsActive:  true,
		StartTime: &future,
	})
	require.NoError(t, err)

	_, err = d.Create(adminCtx, &model.CreateBannerRequest{
		Title:    "Disabled",
		Image:    "disabled.png",
		Position: "home",
		IsActive: false,
	})
	require.NoError(t, err)

	resp, err := d.GetList(ctx, &model.GetBannersRequest{Position: "home"})
	require.NoError(t, err)
	require.Len(t, resp.Banners, 1)
	require.Equal(t, "Current", resp.Banners[0].Title)

	// Listing counted one view for the visible banner.
	banner, err := bannerRepo.GetByID(ctx, current.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), banner.ViewCount)

	_, err = d.Click(ctx, &model.ClickBannerRequest{ID: current.ID})
	require.NoError(t, err)

	banner, err = bannerRepo.GetByID(ctx, current.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), banner.ClickCount)

	_, err = d.Click(ctx, &model.ClickBannerRequest{ID: "no-such-banner"})
	requireErrorCode(t, err, errorx.NotFound)

	_, err = d.Delete(adminCtx, &model.DeleteBannerRequest{ID: current.ID})
	require.NoError(t, err)

	resp, err = d.GetList(ctx, &model.GetBannersRequest{Position: "home"})
	require.NoError(t, err)
	require.Empty(t, resp.Banners)
}
