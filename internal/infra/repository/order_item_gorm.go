package repository

import (
	"context"

	"gorm.io/gorm"

	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}
	return nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

// 商品名付きの明細（一覧表示用）
func (r *OrderItemGormRepository) ListDetailsByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	rows := []repo.OrderItemDetail{}

	err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select("p.name AS product_name, oi.quantity, oi.price_each").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id asc").
		Scan(&rows).Error

	if err != nil {
		return []repo.OrderItemDetail{}, err
	}
	return rows, nil
}

// 商品を参照している明細の件数（削除ガード用）
func (r *OrderItemGormRepository) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}
	return count, nil
}
