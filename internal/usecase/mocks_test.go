package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

// =====================
// Mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) AdminExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListDetailedByUserID(ctx context.Context, userID int64) ([]repo.CartItemWithProduct, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]repo.CartItemWithProduct)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, bool, error) {
	args := m.Called(ctx, userID, productID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Bool(1), args.Error(2)
}

func (m *CartItemRepoMock) UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, userID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateStatus(ctx context.Context, cartItemID int64, status model.CartStatus) error {
	args := m.Called(ctx, cartItemID, status)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ListDetailsByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]repo.OrderItemDetail)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type StatsRepoMock struct{ mock.Mock }

func (m *StatsRepoMock) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StatsRepoMock) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StatsRepoMock) CountLowStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StatsRepoMock) OrderStats(ctx context.Context) (repo.OrderStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(repo.OrderStats)
	return s, args.Error(1)
}

func (m *StatsRepoMock) CartStats(ctx context.Context) (repo.CartStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(repo.CartStats)
	return s, args.Error(1)
}

func (m *StatsRepoMock) TodayStats(ctx context.Context) (repo.TodayStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(repo.TodayStats)
	return s, args.Error(1)
}

func (m *StatsRepoMock) TopProducts(ctx context.Context, limit int) ([]repo.TopProduct, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]repo.TopProduct)
	return items, args.Error(1)
}

func (m *StatsRepoMock) CustomerRollups(ctx context.Context) ([]repo.CustomerRollup, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.CustomerRollup)
	return rows, args.Error(1)
}

func (m *StatsRepoMock) UserOrderStats(ctx context.Context, userID int64) (repo.UserOrderStats, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(repo.UserOrderStats)
	return s, args.Error(1)
}

func (m *StatsRepoMock) UserCartStats(ctx context.Context, userID int64) (repo.UserCartStats, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(repo.UserCartStats)
	return s, args.Error(1)
}

func (m *StatsRepoMock) ListOrdersWithCustomer(ctx context.Context) ([]repo.OrderWithCustomer, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.OrderWithCustomer)
	return rows, args.Error(1)
}

func (m *StatsRepoMock) ListCartRows(ctx context.Context) ([]repo.CartRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.CartRow)
	return rows, args.Error(1)
}

// =====================
// Tx stubs
// =====================

// 全repoを束ねたTxRepos。テストでは使うものだけ入れる。
type TxReposStub struct {
	users      *UserRepoMock
	products   *ProductRepoMock
	inventory  *InventoryRepoMock
	cartItems  *CartItemRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	stats      *StatsRepoMock
}

func newTxReposStub() *TxReposStub {
	return &TxReposStub{
		users:      new(UserRepoMock),
		products:   new(ProductRepoMock),
		inventory:  new(InventoryRepoMock),
		cartItems:  new(CartItemRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		stats:      new(StatsRepoMock),
	}
}

func (s *TxReposStub) Users() repo.UserRepository           { return s.users }
func (s *TxReposStub) Products() repo.ProductRepository     { return s.products }
func (s *TxReposStub) Inventory() repo.InventoryRepository  { return s.inventory }
func (s *TxReposStub) CartItems() repo.CartItemRepository   { return s.cartItems }
func (s *TxReposStub) Orders() repo.OrderRepository         { return s.orders }
func (s *TxReposStub) OrderItems() repo.OrderItemRepository { return s.orderItems }
func (s *TxReposStub) Stats() repo.StatsRepository          { return s.stats }

// fnをそのまま実行するTransactionManager。
// fnがエラーを返したらロールバック相当（何もコミットされない前提）でエラーを返す。
type TxManagerStub struct {
	repos *TxReposStub
}

func newTxManagerStub(repos *TxReposStub) *TxManagerStub {
	return &TxManagerStub{repos: repos}
}

func (t *TxManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

// =====================
// Helpers
// =====================

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	assert.Error(t, err)
	e, ok := apperr.As(err)
	if assert.True(t, ok, "expected *apperr.Error, got %v", err) {
		assert.Equal(t, kind, e.Kind)
	}
}

var customer = model.Principal{UserID: 10, Role: model.RoleCustomer}
var admin = model.Principal{UserID: 1, Role: model.RoleAdmin}
var anonymous = model.Principal{}
