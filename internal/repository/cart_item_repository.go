package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"quickcart/internal/domain/model"
)

// カート行と現在の商品情報をJOINした読み取り用の行。
// price/stockはスナップショットではなく今のカタログの値。
type CartItemWithProduct struct {
	ID          int64            `json:"id"`
	Quantity    int64            `json:"quantity"`
	Status      model.CartStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	Category    string           `json:"category"`
	Stock       int64            `json:"stock"`
}

type CartItemRepository interface {
	// 新しく作られた順
	ListDetailedByUserID(ctx context.Context, userID int64) ([]CartItemWithProduct, error)

	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, bool, error)

	// 同一(user, product)は数量加算。行は増やさない
	UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error

	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	UpdateStatus(ctx context.Context, cartItemID int64, status model.CartStatus) error
	DeleteByID(ctx context.Context, cartItemID int64) error
}
