package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
	"quickcart/internal/usecase"
)

func TestOrderUsecase_PlaceOrder_Anonymous(t *testing.T) {
	uc := usecase.NewOrderUsecase(newTxManagerStub(newTxReposStub()))

	_, err := uc.PlaceOrder(context.Background(), anonymous, usecase.PlaceOrderInput{
		Items: []usecase.OrderLine{{ProductID: 1, Quantity: 1}},
	})
	assertKind(t, err, apperr.KindUnauthorized)
}

func TestOrderUsecase_PlaceOrder_AdminForbidden(t *testing.T) {
	uc := usecase.NewOrderUsecase(newTxManagerStub(newTxReposStub()))

	_, err := uc.PlaceOrder(context.Background(), admin, usecase.PlaceOrderInput{
		Items: []usecase.OrderLine{{ProductID: 1, Quantity: 1}},
	})
	assertKind(t, err, apperr.KindForbidden)
}

func TestOrderUsecase_PlaceOrder_EmptyItems(t *testing.T) {
	uc := usecase.NewOrderUsecase(newTxManagerStub(newTxReposStub()))

	_, err := uc.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{})
	assertKind(t, err, apperr.KindValidation)
}

func TestOrderUsecase_PlaceOrder_InvalidQuantity(t *testing.T) {
	uc := usecase.NewOrderUsecase(newTxManagerStub(newTxReposStub()))

	_, err := uc.PlaceOrder(context.Background(), customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLine{{ProductID: 1, Quantity: 0}},
	})
	assertKind(t, err, apperr.KindValidation)
}

func TestOrderUsecase_PlaceOrder_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewOrderUsecase(newTxManagerStub(repos))

	repos.products.On("FindByID", mock.Anything, int64(99)).
		Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(ctx, customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLine{{ProductID: 99, Quantity: 1}},
	})
	assertKind(t, err, apperr.KindNotFound)

	repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_InsufficientStockAtValidation(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewOrderUsecase(newTxManagerStub(repos))

	repos.products.On("FindByID", mock.Anything, int64(7)).
		Return(model.Product{ID: 7, Price: decimal.RequireFromString("9.99"), Stock: 2}, nil)

	_, err := uc.PlaceOrder(ctx, customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLine{{ProductID: 7, Quantity: 3}},
	})
	assertKind(t, err, apperr.KindInsufficientStock)

	repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 検証時点の単価で合計を確定し、明細スナップショットを残す。
func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewOrderUsecase(newTxManagerStub(repos))

	repos.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Price: decimal.RequireFromString("999.99"), Stock: 10}, nil)
	repos.products.On("FindByID", mock.Anything, int64(2)).
		Return(model.Product{ID: 2, Price: decimal.RequireFromString("4.99"), Stock: 100}, nil)

	repos.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == customer.UserID &&
			o.Status == model.OrderStatusPending &&
			o.TotalAmount.Equal(decimal.RequireFromString("1014.96"))
	})).Return(int64(42), nil)

	repos.orderItems.On("CreateBulk", mock.Anything, int64(42), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].PriceEach.Equal(decimal.RequireFromString("999.99")) &&
			items[1].Quantity == 3
	})).Return(nil)

	repos.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)
	repos.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(2), int64(3)).Return(true, nil)

	out, err := uc.PlaceOrder(ctx, customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLine{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 3},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.OrderID)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("1014.96")))

	repos.orders.AssertExpectations(t)
	repos.orderItems.AssertExpectations(t)
	repos.inventory.AssertExpectations(t)
}

// 同時注文で在庫が先に消えたケース：条件付きUPDATEが0行 → 全体がエラーで返る。
func TestOrderUsecase_PlaceOrder_InsufficientStockAtDecrement(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewOrderUsecase(newTxManagerStub(repos))

	repos.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Price: decimal.RequireFromString("5.00"), Stock: 1}, nil)
	repos.orders.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	repos.orderItems.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)
	repos.inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(false, nil)

	_, err := uc.PlaceOrder(ctx, customer, usecase.PlaceOrderInput{
		Items: []usecase.OrderLine{{ProductID: 1, Quantity: 1}},
	})
	assertKind(t, err, apperr.KindInsufficientStock)
}

func TestOrderUsecase_AdminUpdateOrderStatus_CustomerForbidden(t *testing.T) {
	uc := usecase.NewOrderUsecase(newTxManagerStub(newTxReposStub()))

	err := uc.AdminUpdateOrderStatus(context.Background(), customer, 1, "approved")
	assertKind(t, err, apperr.KindForbidden)
}

func TestOrderUsecase_AdminUpdateOrderStatus_InvalidStatus(t *testing.T) {
	uc := usecase.NewOrderUsecase(newTxManagerStub(newTxReposStub()))

	err := uc.AdminUpdateOrderStatus(context.Background(), admin, 1, "cancelled")
	assertKind(t, err, apperr.KindValidation)
}

func TestOrderUsecase_AdminUpdateOrderStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewOrderUsecase(newTxManagerStub(repos))

	repos.orders.On("FindByID", mock.Anything, int64(404)).
		Return(model.Order{}, repo.ErrNotFound)

	err := uc.AdminUpdateOrderStatus(ctx, admin, 404, "approved")
	assertKind(t, err, apperr.KindNotFound)
}

// 遷移表は持たない：deliveredからpendingへも戻せる。
func TestOrderUsecase_AdminUpdateOrderStatus_AnyTransition(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewOrderUsecase(newTxManagerStub(repos))

	repos.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, Status: model.OrderStatusDelivered}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusPending).Return(nil)

	err := uc.AdminUpdateOrderStatus(ctx, admin, 1, "pending")
	assert.NoError(t, err)
	repos.orders.AssertExpectations(t)
}
