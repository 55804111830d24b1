package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

// DashboardUsecase は顧客本人のダッシュボード。
type DashboardUsecase struct {
	tx repo.TransactionManager
}

func NewDashboardUsecase(tx repo.TransactionManager) *DashboardUsecase {
	return &DashboardUsecase{tx: tx}
}

type CustomerOrderOutput struct {
	ID          int64                  `json:"id"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Status      model.OrderStatus      `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Items       []repo.OrderItemDetail `json:"items"`
}

type DashboardOutput struct {
	Orders    []CustomerOrderOutput      `json:"orders"`
	CartItems []repo.CartItemWithProduct `json:"cart_items"`
	Stats     repo.UserOrderStats        `json:"stats"`
	CartStats repo.UserCartStats         `json:"cart_stats"`
}

// CustomerDashboard は自分の注文・カート・集計をまとめて返す。
func (u *DashboardUsecase) CustomerDashboard(ctx context.Context, p model.Principal) (DashboardOutput, error) {
	if err := requireCustomer(p); err != nil {
		return DashboardOutput{}, err
	}

	var out DashboardOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, p.UserID)
		if err != nil {
			return apperr.Internal()
		}

		outOrders := make([]CustomerOrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListDetailsByOrderID(ctx, o.ID)
			if err != nil {
				return apperr.Internal()
			}
			outOrders = append(outOrders, CustomerOrderOutput{
				ID:          o.ID,
				TotalAmount: o.TotalAmount,
				Status:      o.Status,
				CreatedAt:   o.CreatedAt,
				UpdatedAt:   o.UpdatedAt,
				Items:       items,
			})
		}

		cartItems, err := r.CartItems().ListDetailedByUserID(ctx, p.UserID)
		if err != nil {
			return apperr.Internal()
		}

		stats, err := r.Stats().UserOrderStats(ctx, p.UserID)
		if err != nil {
			return apperr.Internal()
		}
		cartStats, err := r.Stats().UserCartStats(ctx, p.UserID)
		if err != nil {
			return apperr.Internal()
		}

		out = DashboardOutput{
			Orders:    outOrders,
			CartItems: cartItems,
			Stats:     stats,
			CartStats: cartStats,
		}
		return nil
	})

	if err != nil {
		return DashboardOutput{}, err
	}
	return out, nil
}
