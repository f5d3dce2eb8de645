package repository

import (
	"context"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	IncreasePoints(ctx context.Context, id string, points int64) error
	DecreasePoints(ctx context.Context, id string, points int64) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "name = ?", name).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) IncreasePoints(ctx context.Context, id string, points int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"points":       gorm.Expr("points + ?", points),
			"total_points": gorm.Expr("total_points + ?", points),
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DecreasePoints only succeeds if the user still holds at least the requested
// amount. A gorm.ErrRecordNotFound therefore means either an unknown user or
// an insufficient balance.
func (r *userRepository) DecreasePoints(ctx context.Context, id string, points int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id = ? AND points >= ?", id, points).
		Updates(map[string]any{
			"points":      gorm.Expr("points - ?", points),
			"used_points": gorm.Expr("used_points + ?", points),
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
