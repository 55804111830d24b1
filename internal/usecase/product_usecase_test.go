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

func TestProductUsecase_ListProducts_Public(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewProductUsecase(newTxManagerStub(repos))

	repos.products.On("List", mock.Anything).Return([]model.Product{
		{ID: 1, Name: "Coffee"},
		{ID: 2, Name: "Tea"},
	}, nil)

	out, err := uc.ListProducts(ctx)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestProductUsecase_AdminListProducts_CustomerForbidden(t *testing.T) {
	uc := usecase.NewProductUsecase(newTxManagerStub(newTxReposStub()))

	_, err := uc.AdminListProducts(context.Background(), customer)
	assertKind(t, err, apperr.KindForbidden)
}

func TestProductUsecase_AdminCreateProduct_MissingNameOrPrice(t *testing.T) {
	uc := usecase.NewProductUsecase(newTxManagerStub(newTxReposStub()))

	price := decimal.RequireFromString("9.99")

	_, err := uc.AdminCreateProduct(context.Background(), admin, usecase.AdminCreateProductInput{Name: "  ", Price: &price})
	assertKind(t, err, apperr.KindValidation)

	_, err = uc.AdminCreateProduct(context.Background(), admin, usecase.AdminCreateProductInput{Name: "Coffee"})
	assertKind(t, err, apperr.KindValidation)
}

// category/reorder_level未指定はデフォルト値で作られる。
func TestProductUsecase_AdminCreateProduct_Defaults(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewProductUsecase(newTxManagerStub(repos))

	price := decimal.RequireFromString("9.99")
	repos.products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Coffee" && p.Category == "General" && p.ReorderLevel == 5
	})).Return(model.Product{ID: 11}, nil)

	id, err := uc.AdminCreateProduct(ctx, admin, usecase.AdminCreateProductInput{Name: "Coffee", Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, int64(11), id)
	repos.products.AssertExpectations(t)
}

func TestProductUsecase_AdminUpdateProduct_NoFields(t *testing.T) {
	uc := usecase.NewProductUsecase(newTxManagerStub(newTxReposStub()))

	err := uc.AdminUpdateProduct(context.Background(), admin, 1, usecase.ProductPatch{})
	assertKind(t, err, apperr.KindValidation)
}

func TestProductUsecase_AdminUpdateProduct_NegativePrice(t *testing.T) {
	uc := usecase.NewProductUsecase(newTxManagerStub(newTxReposStub()))

	price := decimal.RequireFromString("-1")
	err := uc.AdminUpdateProduct(context.Background(), admin, 1, usecase.ProductPatch{Price: &price})
	assertKind(t, err, apperr.KindValidation)
}

// 指定したフィールドだけが更新対象になる。
func TestProductUsecase_AdminUpdateProduct_PartialFields(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewProductUsecase(newTxManagerStub(repos))

	repos.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Coffee"}, nil)

	stock := int64(30)
	price := decimal.RequireFromString("8.50")
	repos.products.On("UpdateFields", mock.Anything, int64(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
		if len(fields) != 2 {
			return false
		}
		p, ok := fields["price"].(decimal.Decimal)
		return ok && p.Equal(price) && fields["stock"] == stock
	})).Return(nil)

	err := uc.AdminUpdateProduct(ctx, admin, 1, usecase.ProductPatch{Price: &price, Stock: &stock})
	assert.NoError(t, err)
	repos.products.AssertExpectations(t)
}

func TestProductUsecase_AdminUpdateProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewProductUsecase(newTxManagerStub(repos))

	repos.products.On("FindByID", mock.Anything, int64(404)).
		Return(model.Product{}, repo.ErrNotFound)

	name := "Coffee"
	err := uc.AdminUpdateProduct(ctx, admin, 404, usecase.ProductPatch{Name: &name})
	assertKind(t, err, apperr.KindNotFound)
}

// 注文明細に載っている商品は消せない。
func TestProductUsecase_AdminDeleteProduct_Referenced(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewProductUsecase(newTxManagerStub(repos))

	repos.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1}, nil)
	repos.orderItems.On("CountByProductID", mock.Anything, int64(1)).Return(int64(2), nil)

	err := uc.AdminDeleteProduct(ctx, admin, 1)
	assertKind(t, err, apperr.KindConflict)

	repos.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductUsecase_AdminDeleteProduct_Success(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc := usecase.NewProductUsecase(newTxManagerStub(repos))

	repos.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1}, nil)
	repos.orderItems.On("CountByProductID", mock.Anything, int64(1)).Return(int64(0), nil)
	repos.products.On("Delete", mock.Anything, int64(1)).Return(nil)

	err := uc.AdminDeleteProduct(ctx, admin, 1)
	assert.NoError(t, err)
	repos.products.AssertExpectations(t)
}
