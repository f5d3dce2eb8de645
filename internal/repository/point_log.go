package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/xcontext"
)

type PointLogRepository interface {
	Append(ctx context.Context, log *entity.PointLog) error
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.PointLog, error)
	SumByUserID(ctx context.Context, userID string) (int64, error)
}

type pointLogRepository struct {
	node *snowflake.Node
}

func NewPointLogRepository() *pointLogRepository {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	return &pointLogRepository{node: node}
}

// Append writes one ledger entry. Snowflake ids keep entries totally ordered
// by creation, so readers can replay a user's history by sorting on id.
func (r *pointLogRepository) Append(ctx context.Context, log *entity.PointLog) error {
	if log.ID == 0 {
		log.ID = r.node.Generate().Int64()
	}

	return xcontext.DB(ctx).Create(log).Error
}

func (r *pointLogRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.PointLog, error) {
	var result []entity.PointLog
	err := xcontext.DB(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointLogRepository) SumByUserID(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := xcontext.DB(ctx).
		Model(&entity.PointLog{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Take(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}
