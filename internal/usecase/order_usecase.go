package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

// OrderUsecase は注文の作成とステータス管理。
// 注文はカートとは独立に作られる（カートは参照も消去もしない）。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type PlaceOrderInput struct {
	Items []OrderLine
}

type PlaceOrderOutput struct {
	OrderID int64           `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

// PlaceOrder は注文確定。全体を1トランザクションで行う。
//  1. 各行の商品をその場で取り直し、存在と在庫を検証する
//  2. 検証時点の単価で合計を計算する
//  3. 注文(pending)と明細を作成し、在庫を減らす
//
// どこかで失敗したら全体をロールバックする（部分確定はない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, p model.Principal, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if err := requireCustomer(p); err != nil {
		return PlaceOrderOutput{}, err
	}
	if len(in.Items) == 0 {
		return PlaceOrderOutput{}, apperr.Validation("no items")
	}
	for _, line := range in.Items {
		if line.ProductID <= 0 {
			return PlaceOrderOutput{}, apperr.Validation("invalid product_id")
		}
		if line.Quantity < 1 {
			return PlaceOrderOutput{}, apperr.Validation("quantity must be a positive integer")
		}
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 在庫と価格は必ずライブの値を見る。カートの古い状態では素通りできない
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(in.Items))

		for _, line := range in.Items {
			product, err := r.Products().FindByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.NotFound("product not found")
			}
			if err != nil {
				return apperr.Internal()
			}
			if line.Quantity > product.Stock {
				return apperr.InsufficientStock("insufficient stock")
			}

			// 検証時点の単価をスナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				PriceEach: product.Price,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(line.Quantity)))
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:      p.UserID,
			TotalAmount: total,
			Status:      model.OrderStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return apperr.Internal()
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return apperr.Internal()
		}

		// 条件付きUPDATEで減算。同時注文で在庫が先に消えていたらここで失敗して
		// 注文・明細ごとロールバックされる
		for _, line := range in.Items {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return apperr.Internal()
			}
			if !ok {
				return apperr.InsufficientStock("insufficient stock")
			}
		}

		out = PlaceOrderOutput{OrderID: orderID, Total: total}
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

// 管理者によるステータス変更。
// 遷移表は持たない：どの状態からでも5値のどれにでも変更できる。
func (u *OrderUsecase) AdminUpdateOrderStatus(ctx context.Context, p model.Principal, orderID int64, status string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if orderID <= 0 {
		return apperr.Validation("invalid id")
	}
	if !model.ValidOrderStatus(status) {
		return apperr.Validation("invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.NotFound("order not found")
			}
			return apperr.Internal()
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
			return apperr.Internal()
		}
		return nil
	})
}
