package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spinmall/backend/internal/common"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BannerDomain interface {
	Create(context.Context, *model.CreateBannerRequest) (*model.CreateBannerResponse, error)
	GetList(context.Context, *model.GetBannersRequest) (*model.GetBannersResponse, error)
	Click(context.Context, *model.ClickBannerRequest) (*model.ClickBannerResponse, error)
	Delete(context.Context, *model.DeleteBannerRequest) (*model.DeleteBannerResponse, error)
}

type bannerDomain struct {
	bannerRepo   repository.BannerRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewBannerDomain(
	bannerRepo repository.BannerRepository,
	userRepo repository.UserRepository,
) *bannerDomain {
	return &bannerDomain{
		bannerRepo:   bannerRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo, entity.GlobalAdminRoles...),
	}
}

func (d *bannerDomain) Create(
	ctx context.Context, req *model.CreateBannerRequest,
) (*model.CreateBannerResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.Title == "" || req.Image == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title or image")
	}

	banner := &entity.Banner{
		Base:      entity.Base{ID: uuid.NewString()},
		Title:     req.Title,
		Image:     req.Image,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}

	if req.StartTime != nil {
		banner.StartTime = sql.NullTime{Time: *req.StartTime, Valid: true}
	}

	if req.EndTime != nil {
		banner.EndTime = sql.NullTime{Time: *req.EndTime, Valid: true}
	}

	if err := d.bannerRepo.Create(ctx, banner); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create banner: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateBannerResponse{ID: banner.ID}, nil
}

// GetList returns the banners currently visible at a position and counts one
// view for each of them.
func (d *bannerDomain) GetList(
	ctx context.Context, req *model.GetBannersRequest,
) (*model.GetBannersResponse, error) {
	banners, err := d.bannerRepo.GetVisible(ctx, req.Position, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get banners: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(banners))
	result := make([]model.Banner, 0, len(banners))
	for i := range banners {
		ids = append(ids, banners[i].ID)
		result = append(result, convertBanner(&banners[i]))
	}

	if err := d.bannerRepo.IncreaseViewCount(ctx, ids); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count banner views: %v", err)
	}

	return &model.GetBannersResponse{Banners: result}, nil
}

func (d *bannerDomain) Click(
	ctx context.Context, req *model.ClickBannerRequest,
) (*model.ClickBannerResponse, error) {
	if err := d.bannerRepo.IncreaseClickCount(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found banner")
		}

		xcontext.Logger(ctx).Errorf("Cannot count banner click: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ClickBannerResponse{}, nil
}

func (d *bannerDomain) Delete(
	ctx context.Context, req *model.DeleteBannerRequest,
) (*model.DeleteBannerResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if err := d.bannerRepo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found banner")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete banner: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteBannerResponse{}, nil
}
