package repository

import (
	"context"

	"gorm.io/gorm"

	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

type StatsGormRepository struct {
	db *gorm.DB
}

// DI
func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *StatsGormRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role = ?", model.RoleCustomer).
		Count(&count).Error
	return count, err
}

// stock <= reorder_level の商品数
func (r *StatsGormRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("stock <= reorder_level").
		Count(&count).Error
	return count, err
}

func (r *StatsGormRepository) OrderStats(ctx context.Context) (repo.OrderStats, error) {
	var s repo.OrderStats

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_orders,
			COUNT(CASE WHEN status = 'approved' THEN 1 END) AS approved_orders,
			COUNT(CASE WHEN status = 'delivered' THEN 1 END) AS delivered_orders,
			COALESCE(SUM(CASE WHEN status = 'delivered' THEN total_amount ELSE 0 END), 0) AS delivered_revenue
		FROM orders
	`).Scan(&s).Error

	if err != nil {
		return repo.OrderStats{}, err
	}
	return s, nil
}

// カート想定額はステータスに関係なく数量×現在価格の合計
func (r *StatsGormRepository) CartStats(ctx context.Context) (repo.CartStats, error) {
	var s repo.CartStats

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_cart_items,
			COUNT(CASE WHEN ci.status = 'pending' THEN 1 END) AS pending_cart_items,
			COUNT(CASE WHEN ci.status = 'approved' THEN 1 END) AS approved_cart_items,
			COALESCE(SUM(ci.quantity * p.price), 0) AS cart_total_value
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
	`).Scan(&s).Error

	if err != nil {
		return repo.CartStats{}, err
	}
	return s, nil
}

// 当日は暦日（DBのCURRENT_DATE）で区切る
func (r *StatsGormRepository) TodayStats(ctx context.Context) (repo.TodayStats, error) {
	var s repo.TodayStats

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS orders_today,
			COALESCE(SUM(total_amount), 0) AS revenue_today
		FROM orders
		WHERE DATE(created_at) = CURRENT_DATE
	`).Scan(&s).Error

	if err != nil {
		return repo.TodayStats{}, err
	}
	return s, nil
}

// deliveredの注文だけを数えた売れ筋
func (r *StatsGormRepository) TopProducts(ctx context.Context, limit int) ([]repo.TopProduct, error) {
	rows := []repo.TopProduct{}

	err := r.db.WithContext(ctx).Raw(`
		SELECT p.name, SUM(oi.quantity) AS total_sold, SUM(oi.quantity * oi.price_each) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'delivered'
		GROUP BY p.id, p.name
		ORDER BY total_sold DESC
		LIMIT ?
	`, limit).Scan(&rows).Error

	if err != nil {
		return []repo.TopProduct{}, err
	}
	return rows, nil
}

// 顧客ごとのロールアップ。サブクエリで数えるので注文×カートの重複カウントは起きない
func (r *StatsGormRepository) CustomerRollups(ctx context.Context) ([]repo.CustomerRollup, error) {
	rows := []repo.CustomerRollup{}

	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.name, u.email, u.created_at,
			(SELECT COUNT(*) FROM orders o WHERE o.user_id = u.id) AS total_orders,
			(SELECT COUNT(*) FROM cart_items ci WHERE ci.user_id = u.id) AS total_cart_items,
			(SELECT COALESCE(SUM(o.total_amount), 0) FROM orders o
				WHERE o.user_id = u.id AND o.status = 'delivered') AS total_spent
		FROM users u
		WHERE u.role = 'customer'
		ORDER BY u.created_at DESC
	`).Scan(&rows).Error

	if err != nil {
		return []repo.CustomerRollup{}, err
	}
	return rows, nil
}

func (r *StatsGormRepository) UserOrderStats(ctx context.Context, userID int64) (repo.UserOrderStats, error) {
	var s repo.UserOrderStats

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_orders,
			COUNT(CASE WHEN status = 'approved' THEN 1 END) AS approved_orders,
			COUNT(CASE WHEN status = 'delivered' THEN 1 END) AS delivered_orders,
			COALESCE(SUM(CASE WHEN status = 'delivered' THEN total_amount ELSE 0 END), 0) AS total_spent
		FROM orders
		WHERE user_id = ?
	`, userID).Scan(&s).Error

	if err != nil {
		return repo.UserOrderStats{}, err
	}
	return s, nil
}

func (r *StatsGormRepository) UserCartStats(ctx context.Context, userID int64) (repo.UserCartStats, error) {
	var s repo.UserCartStats

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_cart_items,
			COUNT(CASE WHEN ci.status = 'pending' THEN 1 END) AS pending_cart_items,
			COUNT(CASE WHEN ci.status = 'approved' THEN 1 END) AS approved_cart_items,
			COUNT(CASE WHEN ci.status = 'rejected' THEN 1 END) AS rejected_cart_items,
			COALESCE(SUM(ci.quantity * p.price), 0) AS cart_total_value
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
	`, userID).Scan(&s).Error

	if err != nil {
		return repo.UserCartStats{}, err
	}
	return s, nil
}

// 管理者向けの注文一覧（新しい順、顧客email付き）
func (r *StatsGormRepository) ListOrdersWithCustomer(ctx context.Context) ([]repo.OrderWithCustomer, error) {
	rows := []repo.OrderWithCustomer{}

	err := r.db.WithContext(ctx).
		Table("orders o").
		Select("o.id, o.total_amount, o.status, o.created_at, o.updated_at, u.email AS customer").
		Joins("JOIN users u ON u.id = o.user_id").
		Order("o.id DESC").
		Scan(&rows).Error

	if err != nil {
		return []repo.OrderWithCustomer{}, err
	}
	return rows, nil
}

// 管理者向けのカート一覧（新しく作られた順、顧客・商品付き）
func (r *StatsGormRepository) ListCartRows(ctx context.Context) ([]repo.CartRow, error) {
	rows := []repo.CartRow{}

	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.id, ci.quantity, ci.status, ci.created_at, ci.updated_at, "+
			"u.id AS user_id, u.name AS customer_name, u.email AS customer_email, "+
			"p.id AS product_id, p.name AS product_name, p.price, p.category").
		Joins("JOIN users u ON u.id = ci.user_id").
		Joins("JOIN products p ON p.id = ci.product_id").
		Order("ci.created_at DESC").
		Scan(&rows).Error

	if err != nil {
		return []repo.CartRow{}, err
	}
	return rows, nil
}
