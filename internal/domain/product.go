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

type ProductDomain interface {
	Create(context.Context, *model.CreateProductRequest) (*model.CreateProductResponse, error)
	GetList(context.Context, *model.GetProductsRequest) (*model.GetProductsResponse, error)
	Exchange(context.Context, *model.ExchangeProductRequest) (*model.ExchangeProductResponse, error)
	GetMyOrders(context.Context, *model.GetMyExchangeOrdersRequest) (*model.GetMyExchangeOrdersResponse, error)
}

type productDomain struct {
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	pointLogRepo repository.PointLogRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewProductDomain(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	pointLogRepo repository.PointLogRepository,
) *productDomain {
	return &productDomain{
		productRepo:  productRepo,
		userRepo:     userRepo,
		pointLogRepo: pointLogRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo, entity.GlobalAdminRoles...),
	}
}

func (d *productDomain) Create(
	ctx context.Context, req *model.CreateProductRequest,
) (*model.CreateProductResponse, error) {
	if err := d.roleVerifier.Verify(ctx); err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	if req.PointsPrice <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Price must be positive")
	}

	product := &entity.Product{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		PointsPrice: req.PointsPrice,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	}

	if err := d.productRepo.Create(ctx, product); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create product: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProductResponse{ID: product.ID}, nil
}

func (d *productDomain) GetList(
	ctx context.Context, req *model.GetProductsRequest,
) (*model.GetProductsResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	products, err := d.productRepo.GetActive(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get products: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Product, 0, len(products))
	for i := range products {
		result = append(result, convertProduct(&products[i]))
	}

	return &model.GetProductsResponse{Products: result}, nil
}

// Exchange spends points on a product. Stock, balance, ledger, and the order
// commit in one transaction so a failure at any step leaves nothing behind.
func (d *productDomain) Exchange(
	ctx context.Context, req *model.ExchangeProductRequest,
) (*model.ExchangeProductResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated yet")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	product, err := d.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	if !product.IsActive {
		return nil, errorx.New(errorx.NotFound, "Not found product")
	}

	// A negative stock means unlimited and skips the guarded decrement.
	if product.Stock >= 0 {
		if err := d.productRepo.CheckAndDecreaseStock(ctx, product.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.OutOfStock, "The product is out of stock")
			}

			xcontext.Logger(ctx).Errorf("Cannot decrease stock: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.userRepo.DecreasePoints(ctx, userID, product.PointsPrice); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientPoints, "Not enough points")
		}

		xcontext.Logger(ctx).Errorf("Cannot decrease points: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload user: %v", err)
		return nil, errorx.Unknown
	}

	err = d.pointLogRepo.Append(ctx, &entity.PointLog{
		UserID:      userID,
		Points:      -product.PointsPrice,
		Balance:     user.Points,
		Reason:      entity.PointReasonExchange,
		RelatedID:   product.ID,
		RelatedType: "product",
		Description: product.Name,
		IPAddress:   clientIP(ctx),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append ledger entry: %v", err)
		return nil, errorx.Unknown
	}

	order := &entity.ExchangeOrder{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		ProductID:   product.ID,
		PointsPrice: product.PointsPrice,
		Status:      entity.ExchangePending,
		IPAddress:   clientIP(ctx),
	}

	if err := d.productRepo.CreateOrder(ctx, order); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create exchange order: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	order.Product = *product
	return &model.ExchangeProductResponse{Order: convertExchangeOrder(order)}, nil
}

func (d *productDomain) GetMyOrders(
	ctx context.Context, req *model.GetMyExchangeOrdersRequest,
) (*model.GetMyExchangeOrdersResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated yet")
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	orders, err := d.productRepo.GetOrdersByUserID(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get exchange orders: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.ExchangeOrder, 0, len(orders))
	for i := range orders {
		result = append(result, convertExchangeOrder(&orders[i]))
	}

	return &model.GetMyExchangeOrdersResponse{Orders: result}, nil
}
