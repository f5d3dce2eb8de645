package domain

import (
	"context"
	"errors"

	"github.com/spinmall/backend/internal/common"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	AdjustPoints(context.Context, *model.AdjustPointsRequest) (*model.AdjustPointsResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	pointLogRepo repository.PointLogRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewUserDomain(
	userRepo repository.UserRepository,
	pointLogRepo repository.PointLogRepository,
) *userDomain {
	return &userDomain{
		userRepo:     userRepo,
		pointLogRepo: pointLogRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo, entity.GlobalAdminRoles...),
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated yet")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: convertUser(user)}, nil
}

// AdjustPoints lets an admin grant or revoke points. The change goes through
// the same guarded updates and ledger append as every other balance change.
func (d *userDomain) AdjustPoints(
	ctx context.Context, req *model.AdjustPointsRequest,
) (*model.AdjustPointsResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.Points == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a zero adjustment")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	var err error
	if req.Points > 0 {
		err = d.userRepo.IncreasePoints(ctx, req.UserID, req.Points)
	} else {
		err = d.userRepo.DecreasePoints(ctx, req.UserID, -req.Points)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientPoints, "Not enough points")
		}

		xcontext.Logger(ctx).Errorf("Cannot adjust points: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload user: %v", err)
		return nil, errorx.Unknown
	}

	err = d.pointLogRepo.Append(ctx, &entity.PointLog{
		UserID:      user.ID,
		Points:      req.Points,
		Balance:     user.Points,
		Reason:      entity.PointReasonAdminAdjust,
		Description: req.Description,
		OperatorID:  xcontext.RequestUserID(ctx),
		IPAddress:   clientIP(ctx),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append ledger entry: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.AdjustPointsResponse{Balance: user.Points}, nil
}
