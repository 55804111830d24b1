package model

import "time"

type CartStatus string

const (
	CartStatusPending  CartStatus = "pending"
	CartStatusApproved CartStatus = "approved"
	CartStatusRejected CartStatus = "rejected"
)

// 管理者が設定できる値かどうか。
func ValidCartStatus(s string) bool {
	switch CartStatus(s) {
	case CartStatusPending, CartStatusApproved, CartStatusRejected:
		return true
	}
	return false
}

// (user_id, product_id) につき1行。同じ商品の再追加は数量を加算する。
// statusは管理者が付けるラベルで、注文作成には影響しない。
type CartItem struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID int64      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int64      `gorm:"not null" json:"quantity"`
	Status    CartStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
