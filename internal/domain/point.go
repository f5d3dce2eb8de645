package domain

import (
	"context"
	"errors"

	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PointDomain interface {
	GetMyLogs(context.Context, *model.GetMyPointLogsRequest) (*model.GetMyPointLogsResponse, error)
}

type pointDomain struct {
	userRepo     repository.UserRepository
	pointLogRepo repository.PointLogRepository
}

func NewPointDomain(
	userRepo repository.UserRepository,
	pointLogRepo repository.PointLogRepository,
) *pointDomain {
	return &pointDomain{userRepo: userRepo, pointLogRepo: pointLogRepo}
}

func (d *pointDomain) GetMyLogs(
	ctx context.Context, req *model.GetMyPointLogsRequest,
) (*model.GetMyPointLogsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated yet")
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	logs, err := d.pointLogRepo.GetByUserID(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point logs: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.PointLog, 0, len(logs))
	for i := range logs {
		result = append(result, convertPointLog(&logs[i]))
	}

	return &model.GetMyPointLogsResponse{Logs: result, Balance: user.Points}, nil
}
