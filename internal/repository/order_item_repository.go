package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"quickcart/internal/domain/model"
)

// 注文明細に商品名を付けた読み取り用の行。
type OrderItemDetail struct {
	ProductName string          `json:"name"`
	Quantity    int64           `json:"quantity"`
	PriceEach   decimal.Decimal `json:"price_each"`
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	ListDetailsByOrderID(ctx context.Context, orderID int64) ([]OrderItemDetail, error)

	// 商品削除の参照チェック用
	CountByProductID(ctx context.Context, productID int64) (int64, error)
}
