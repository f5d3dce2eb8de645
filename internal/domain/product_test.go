package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/testutil"
	"github.com/spinmall/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, ctx context.Context, price int64, stock int) *entity.Product {
	product := &entity.Product{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        "Mug",
		PointsPrice: price,
		Stock:       stock,
		IsActive:    true,
	}

	require.NoError(t, xcontext.DB(ctx).Create(product).Error)
	return product
}

func TestExchangeProduct(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	pointLogRepo := repository.NewPointLogRepository()
	d := NewProductDomain(repository.NewProductRepository(), userRepo, pointLogRepo)

	user := testutil.SeedUser(t, ctx, "alice", 100)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	product := seedProduct(t, ctx, 40, 2)

	resp, err := d.Exchange(userCtx, &model.ExchangeProductRequest{ProductID: product.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.ExchangePending), resp.Order.Status)
	require.Equal(t, int64(40), resp.Order.PointsPrice)

	fresh, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(60), fresh.Points)

	logs, err := pointLogRepo.GetByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, entity.PointReasonExchange, logs[0].Reason)
	require.Equal(t, int64(-40), logs[0].Points)
	require.Equal(t, product.ID, logs[0].RelatedID)

	_, err = d.Exchange(userCtx, &model.ExchangeProductRequest{ProductID: product.ID})
	require.NoError(t, err)

	// The stock is used up now.
	_, err = d.Exchange(userCtx, &model.ExchangeProductRequest{ProductID: product.ID})
	requireErrorCode(t, err, errorx.OutOfStock)

	orders, err := d.GetMyOrders(userCtx, &model.GetMyExchangeOrdersRequest{})
	require.NoError(t, err)
	require.Len(t, orders.Orders, 2)
	require.Equal(t, "Mug", orders.Orders[0].ProductName)
}

func TestExchangeInsufficientPointsKeepsStock(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	productRepo := repository.NewProductRepository()
	d := NewProductDomain(productRepo, userRepo, repository.NewPointLogRepository())

	user := testutil.SeedUser(t, ctx, "alice", 10)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	product := seedProduct(t, ctx, 40, 1)

	_, err := d.Exchange(userCtx, &model.ExchangeProductRequest{ProductID: product.ID})
	requireErrorCode(t, err, errorx.InsufficientPoints)

	// The aborted exchange must not consume the unit it reserved.
	fresh, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, fresh.Stock)
}

func TestExchangeUnlimitedStock(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	productRepo := repository.NewProductRepository()
	d := NewProductDomain(productRepo, userRepo, repository.NewPointLogRepository())

	user := testutil.SeedUser(t, ctx, "alice", 100)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	product := seedProduct(t, ctx, 10, -1)

	for i := 0; i < 3; i++ {
		_, err := d.Exchange(userCtx, &model.ExchangeProductRequest{ProductID: product.ID})
		require.NoError(t, err)
	}

	fresh, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, -1, fresh.Stock)
}

func TestExchangeInactiveProduct(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := NewProductDomain(
		repository.NewProductRepository(),
		repository.NewUserRepository(),
		repository.NewPointLogRepository(),
	)

	user := testutil.SeedUser(t, ctx, "alice", 100)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	product := seedProduct(t, ctx, 10, 1)
	require.NoError(t, xcontext.DB(ctx).
		Model(product).Update("is_active", false).Error)

	_, err := d.Exchange(userCtx, &model.ExchangeProductRequest{ProductID: product.ID})
	requireErrorCode(t, err, errorx.NotFound)
}
