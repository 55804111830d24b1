package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 在庫(stock)は常に0以上。マイナスになる操作は拒否する。
// reorder_level以下になった商品は低在庫として集計される。
type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Category     string          `gorm:"type:varchar(100);not null" json:"category"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock        int64           `gorm:"not null;default:0" json:"stock"`
	ReorderLevel int64           `gorm:"not null;default:5" json:"reorder_level"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
