package repository

import (
	"context"
	"time"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *entity.Banner) error
	GetByID(ctx context.Context, id string) (*entity.Banner, error)
	GetVisible(ctx context.Context, position string, now time.Time) ([]entity.Banner, error)
	IncreaseViewCount(ctx context.Context, ids []string) error
	IncreaseClickCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type bannerRepository struct{}

func NewBannerRepository() *bannerRepository {
	return &bannerRepository{}
}

func (r *bannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	return xcontext.DB(ctx).Create(banner).Error
}

func (r *bannerRepository) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	var record entity.Banner
	if err := xcontext.DB(ctx).Take(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetVisible lists active banners whose schedule window contains now. A null
// bound is open on that side.
func (r *bannerRepository) GetVisible(
	ctx context.Context, position string, now time.Time,
) ([]entity.Banner, error) {
	tx := xcontext.DB(ctx).
		Where("is_active = ?", true).
		Where("(start_time IS NULL OR start_time <= ?)", now).
		Where("(end_time IS NULL OR end_time >= ?)", now).
		Order("sort_order ASC")

	if position != "" {
		tx = tx.Where("position = ?", position)
	}

	var result []entity.Banner
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *bannerRepository) IncreaseViewCount(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Model(&entity.Banner{}).
		Where("id IN (?)", ids).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *bannerRepository) IncreaseClickCount(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Banner{}).
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

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Banner{}, "id = ?", id)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
