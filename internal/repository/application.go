package repository

import (
	"context"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	GetActive(ctx context.Context, category string) ([]entity.Application, error)
	IncreaseViewCount(ctx context.Context, ids []string) error
	IncreaseClickCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type applicationRepository struct{}

func NewApplicationRepository() *applicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, app *entity.Application) error {
	return xcontext.DB(ctx).Create(app).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	var record entity.Application
	if err := xcontext.DB(ctx).Take(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *applicationRepository) GetActive(
	ctx context.Context, category string,
) ([]entity.Application, error) {
	tx := xcontext.DB(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC")

	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var result []entity.Application
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *applicationRepository) IncreaseViewCount(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Model(&entity.Application{}).
		Where("id IN (?)", ids).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *applicationRepository) IncreaseClickCount(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Application{}).
		Where("id = ?", id).
		Update("click_count", gorm.Expr("click_count + 1"))
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Application{}, "id = ?", id)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
