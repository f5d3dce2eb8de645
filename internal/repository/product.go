package repository

import (
	"context"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetActive(ctx context.Context, offset, limit int) ([]entity.Product, error)
	CheckAndDecreaseStock(ctx context.Context, id string) error
	CreateOrder(ctx context.Context, order *entity.ExchangeOrder) error
	GetOrdersByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.ExchangeOrder, error)
}

type productRepository struct{}

func NewProductRepository() *productRepository {
	return &productRepository{}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return xcontext.DB(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var record entity.Product
	if err := xcontext.DB(ctx).Take(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *productRepository) GetActive(
	ctx context.Context, offset, limit int,
) ([]entity.Product, error) {
	var result []entity.Product
	err := xcontext.DB(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CheckAndDecreaseStock takes one unit if any remains. Callers handle
// unlimited stock (negative value) themselves and skip this call.
func (r *productRepository) CheckAndDecreaseStock(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Product{}).
		Where("id = ? AND stock > 0", id).
		Update("stock", gorm.Expr("stock - 1"))
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepository) CreateOrder(ctx context.Context, order *entity.ExchangeOrder) error {
	return xcontext.DB(ctx).Create(order).Error
}

func (r *productRepository) GetOrdersByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.ExchangeOrder, error) {
	var result []entity.ExchangeOrder
	err := xcontext.DB(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
