package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

// AdminStatsUsecase は管理者向けの読み取り専用集計。
// キャッシュせず、呼ばれるたびに再計算する。
type AdminStatsUsecase struct {
	tx repo.TransactionManager
}

func NewAdminStatsUsecase(tx repo.TransactionManager) *AdminStatsUsecase {
	return &AdminStatsUsecase{tx: tx}
}

// ダッシュボードのサマリー。キー名は管理画面のJSに合わせてある。
type SummaryOutput struct {
	TotalProducts     int64             `json:"totalProducts"`
	TotalCustomers    int64             `json:"totalCustomers"`
	TotalOrders       int64             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal   `json:"totalRevenue"`
	DeliveredRevenue  decimal.Decimal   `json:"deliveredRevenue"`
	PendingOrders     int64             `json:"pendingOrders"`
	ApprovedOrders    int64             `json:"approvedOrders"`
	DeliveredOrders   int64             `json:"deliveredOrders"`
	TotalCartItems    int64             `json:"totalCartItems"`
	PendingCartItems  int64             `json:"pendingCartItems"`
	ApprovedCartItems int64             `json:"approvedCartItems"`
	CartTotalValue    decimal.Decimal   `json:"cartTotalValue"`
	OrdersToday       int64             `json:"ordersToday"`
	RevenueToday      decimal.Decimal   `json:"revenueToday"`
	LowStock          int64             `json:"lowStock"`
	TopProducts       []repo.TopProduct `json:"topProducts"`
}

// 注文一覧の1件（明細ネスト付き）。
type AdminOrderOutput struct {
	repo.OrderWithCustomer
	Items []repo.OrderItemDetail `json:"items"`
}

// Summary は全体の集計を1トランザクションのスナップショットで返す。
func (u *AdminStatsUsecase) Summary(ctx context.Context, p model.Principal) (SummaryOutput, error) {
	if err := requireAdmin(p); err != nil {
		return SummaryOutput{}, err
	}

	var out SummaryOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s := r.Stats()

		totalProducts, err := s.CountProducts(ctx)
		if err != nil {
			return apperr.Internal()
		}
		totalCustomers, err := s.CountCustomers(ctx)
		if err != nil {
			return apperr.Internal()
		}
		orderStats, err := s.OrderStats(ctx)
		if err != nil {
			return apperr.Internal()
		}
		cartStats, err := s.CartStats(ctx)
		if err != nil {
			return apperr.Internal()
		}
		todayStats, err := s.TodayStats(ctx)
		if err != nil {
			return apperr.Internal()
		}
		lowStock, err := s.CountLowStock(ctx)
		if err != nil {
			return apperr.Internal()
		}
		topProducts, err := s.TopProducts(ctx, 5)
		if err != nil {
			return apperr.Internal()
		}

		out = SummaryOutput{
			TotalProducts:     totalProducts,
			TotalCustomers:    totalCustomers,
			TotalOrders:       orderStats.TotalOrders,
			TotalRevenue:      orderStats.TotalRevenue,
			DeliveredRevenue:  orderStats.DeliveredRevenue,
			PendingOrders:     orderStats.PendingOrders,
			ApprovedOrders:    orderStats.ApprovedOrders,
			DeliveredOrders:   orderStats.DeliveredOrders,
			TotalCartItems:    cartStats.TotalCartItems,
			PendingCartItems:  cartStats.PendingCartItems,
			ApprovedCartItems: cartStats.ApprovedCartItems,
			CartTotalValue:    cartStats.CartTotalValue,
			OrdersToday:       todayStats.OrdersToday,
			RevenueToday:      todayStats.RevenueToday,
			LowStock:          lowStock,
			TopProducts:       topProducts,
		}
		return nil
	})

	if err != nil {
		return SummaryOutput{}, err
	}
	return out, nil
}

// 顧客ごとのロールアップ。活動ゼロの顧客も含む。
func (u *AdminStatsUsecase) Customers(ctx context.Context, p model.Principal) ([]repo.CustomerRollup, error) {
	if err := requireAdmin(p); err != nil {
		return []repo.CustomerRollup{}, err
	}

	var rows []repo.CustomerRollup
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		rows, err = r.Stats().CustomerRollups(ctx)
		if err != nil {
			return apperr.Internal()
		}
		return nil
	})
	if err != nil {
		return []repo.CustomerRollup{}, err
	}
	return rows, nil
}

// 全注文の一覧（新しい順、明細ネスト付き）。
func (u *AdminStatsUsecase) Orders(ctx context.Context, p model.Principal) ([]AdminOrderOutput, error) {
	if err := requireAdmin(p); err != nil {
		return []AdminOrderOutput{}, err
	}

	var outs []AdminOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Stats().ListOrdersWithCustomer(ctx)
		if err != nil {
			return apperr.Internal()
		}

		outs = make([]AdminOrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListDetailsByOrderID(ctx, o.ID)
			if err != nil {
				return apperr.Internal()
			}
			outs = append(outs, AdminOrderOutput{OrderWithCustomer: o, Items: items})
		}
		return nil
	})

	if err != nil {
		return []AdminOrderOutput{}, err
	}
	return outs, nil
}

// 全カート行の一覧（顧客・商品情報付き）。
func (u *AdminStatsUsecase) Carts(ctx context.Context, p model.Principal) ([]repo.CartRow, error) {
	if err := requireAdmin(p); err != nil {
		return []repo.CartRow{}, err
	}

	var rows []repo.CartRow
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		rows, err = r.Stats().ListCartRows(ctx)
		if err != nil {
			return apperr.Internal()
		}
		return nil
	})
	if err != nil {
		return []repo.CartRow{}, err
	}
	return rows, nil
}
