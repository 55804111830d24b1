package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 注文全体の集計。
type OrderStats struct {
	TotalOrders      int64           `json:"total_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	PendingOrders    int64           `json:"pending_orders"`
	ApprovedOrders   int64           `json:"approved_orders"`
	DeliveredOrders  int64           `json:"delivered_orders"`
	DeliveredRevenue decimal.Decimal `json:"delivered_revenue"`
}

// カート全体の集計。想定額はステータスに関係なく数量×現在価格の合計。
type CartStats struct {
	TotalCartItems    int64           `json:"total_cart_items"`
	PendingCartItems  int64           `json:"pending_cart_items"`
	ApprovedCartItems int64           `json:"approved_cart_items"`
	CartTotalValue    decimal.Decimal `json:"cart_total_value"`
}

// 当日（暦日）の注文集計。
type TodayStats struct {
	OrdersToday  int64           `json:"orders_today"`
	RevenueToday decimal.Decimal `json:"revenue_today"`
}

// deliveredの注文だけを数えた売れ筋。
type TopProduct struct {
	Name      string          `json:"name"`
	TotalSold int64           `json:"total_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// 顧客ごとのロールアップ。活動ゼロの顧客も含む。
type CustomerRollup struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	CreatedAt      time.Time       `json:"created_at"`
	TotalOrders    int64           `json:"total_orders"`
	TotalCartItems int64           `json:"total_cart_items"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
}

// 顧客1人分の注文集計（ダッシュボード用）。
type UserOrderStats struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	ApprovedOrders  int64           `json:"approved_orders"`
	DeliveredOrders int64           `json:"delivered_orders"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
}

// 顧客1人分のカート集計。
type UserCartStats struct {
	TotalCartItems    int64           `json:"total_cart_items"`
	PendingCartItems  int64           `json:"pending_cart_items"`
	ApprovedCartItems int64           `json:"approved_cart_items"`
	RejectedCartItems int64           `json:"rejected_cart_items"`
	CartTotalValue    decimal.Decimal `json:"cart_total_value"`
}

// 管理者一覧用：注文＋顧客email。
type OrderWithCustomer struct {
	ID          int64           `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Customer    string          `json:"customer"`
}

// 管理者一覧用：カート行＋顧客＋商品。
type CartRow struct {
	ID            int64           `json:"id"`
	Quantity      int64           `json:"quantity"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	UserID        int64           `json:"user_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
}

// 読み取り専用の集計。呼ばれるたびに再計算する（キャッシュしない）。
type StatsRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)

	// stock <= reorder_level の商品数
	CountLowStock(ctx context.Context) (int64, error)

	OrderStats(ctx context.Context) (OrderStats, error)
	CartStats(ctx context.Context) (CartStats, error)
	TodayStats(ctx context.Context) (TodayStats, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)

	CustomerRollups(ctx context.Context) ([]CustomerRollup, error)
	UserOrderStats(ctx context.Context, userID int64) (UserOrderStats, error)
	UserCartStats(ctx context.Context, userID int64) (UserCartStats, error)

	// 新しい順の全件
	ListOrdersWithCustomer(ctx context.Context) ([]OrderWithCustomer, error)
	ListCartRows(ctx context.Context) ([]CartRow, error)
}
