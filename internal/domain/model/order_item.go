package model

import "github.com/shopspring/decimal"

// price_eachは注文時点の単価スナップショット。
// 商品価格が後から変わっても明細は変わらない。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	PriceEach decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_each"`
}
