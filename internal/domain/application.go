package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spinmall/backend/internal/common"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ApplicationDomain interface {
	Create(context.Context, *model.CreateApplicationRequest) (*model.CreateApplicationResponse, error)
	GetList(context.Context, *model.GetApplicationsRequest) (*model.GetApplicationsResponse, error)
	Click(context.Context, *model.ClickApplicationRequest) (*model.ClickApplicationResponse, error)
	Delete(context.Context, *model.DeleteApplicationRequest) (*model.DeleteApplicationResponse, error)
}

type applicationDomain struct {
	appRepo      repository.ApplicationRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewApplicationDomain(
	appRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
) *applicationDomain {
	return &applicationDomain{
		appRepo:      appRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo, entity.GlobalAdminRoles...),
	}
}

func (d *applicationDomain) Create(
	ctx context.Context, req *model.CreateApplicationRequest,
) (*model.CreateApplicationResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.Name == "" || req.LinkURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name or link")
	}

	app := &entity.Application{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		LinkURL:     req.LinkURL,
		Category:    req.Category,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}

	if err := d.appRepo.Create(ctx, app); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateApplicationResponse{ID: app.ID}, nil
}

func (d *applicationDomain) GetList(
	ctx context.Context, req *model.GetApplicationsRequest,
) (*model.GetApplicationsResponse, error) {
	apps, err := d.appRepo.GetActive(ctx, req.Category)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get applications: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(apps))
	result := make([]model.Application, 0, len(apps))
	for i := range apps {
		ids = append(ids, apps[i].ID)
		result = append(result, convertApplication(&apps[i]))
	}

	if err := d.appRepo.IncreaseViewCount(ctx, ids); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count application views: %v", err)
	}

	return &model.GetApplicationsResponse{Applications: result}, nil
}

func (d *applicationDomain) Click(
	ctx context.Context, req *model.ClickApplicationRequest,
) (*model.ClickApplicationResponse, error) {
	if err := d.appRepo.IncreaseClickCount(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot count application click: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ClickApplicationResponse{}, nil
}

func (d *applicationDomain) Delete(
	ctx context.Context, req *model.DeleteApplicationRequest,
) (*model.DeleteApplicationResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if err := d.appRepo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete application: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteApplicationResponse{}, nil
}
