package usecase

import (
	"context"
	"errors"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 在庫はここでは「チェックだけ」行い、減らすのは注文確定時。
// 各操作は1トランザクションで実行する。
type CartUsecase struct {
	tx repo.TransactionManager
}

func NewCartUsecase(tx repo.TransactionManager) *CartUsecase {
	return &CartUsecase{tx: tx}
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// カート一覧。商品情報は現在のカタログの値（スナップショットではない）。
type CartOutput struct {
	Items []repo.CartItemWithProduct `json:"items"`
}

// GetCart は自分のカートを返す（認証済みなら誰でも可）。
func (u *CartUsecase) GetCart(ctx context.Context, p model.Principal) (CartOutput, error) {
	if err := requireAuthenticated(p); err != nil {
		return CartOutput{}, err
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.CartItems().ListDetailedByUserID(ctx, p.UserID)
		if err != nil {
			return apperr.Internal()
		}
		out = CartOutput{Items: items}
		return nil
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// AddToCart はカートに追加（同一商品は数量加算、行は増やさない）。
// 合計数量が現在在庫を超えるなら追加自体を拒否する。
func (u *CartUsecase) AddToCart(ctx context.Context, p model.Principal, in AddCartInput) (CartOutput, error) {
	if err := requireCustomer(p); err != nil {
		return CartOutput{}, err
	}
	if in.ProductID <= 0 {
		return CartOutput{}, apperr.Validation("product_id required")
	}
	if in.Quantity < 1 {
		return CartOutput{}, apperr.Validation("quantity must be a positive integer")
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		product, err := r.Products().FindByID(ctx, in.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("product not found")
		}
		if err != nil {
			return apperr.Internal()
		}

		// 既存行があれば合算してから在庫と比較する
		existing, found, err := r.CartItems().FindByUserAndProduct(ctx, p.UserID, in.ProductID)
		if err != nil {
			return apperr.Internal()
		}

		newTotal := in.Quantity
		if found {
			newTotal += existing.Quantity
		}
		if newTotal > product.Stock {
			return apperr.InsufficientStock("insufficient stock")
		}

		if err := r.CartItems().UpsertByUserAndProduct(ctx, p.UserID, in.ProductID, in.Quantity); err != nil {
			return apperr.Internal()
		}

		items, err := r.CartItems().ListDetailedByUserID(ctx, p.UserID)
		if err != nil {
			return apperr.Internal()
		}
		out = CartOutput{Items: items}
		return nil
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// 数量変更（所有チェック＋在庫チェック）。quantity=0は削除。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, p model.Principal, cartItemID int64, quantity int64) (CartOutput, error) {
	if err := requireCustomer(p); err != nil {
		return CartOutput{}, err
	}
	if cartItemID <= 0 {
		return CartOutput{}, apperr.Validation("invalid id")
	}
	if quantity < 0 {
		return CartOutput{}, apperr.Validation("quantity must be a non-negative integer")
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.CartItems().FindByID(ctx, cartItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("cart item not found")
		}
		if err != nil {
			return apperr.Internal()
		}

		// 他人の明細は「存在しない扱い」にする
		if item.UserID != p.UserID {
			return apperr.NotFound("cart item not found")
		}

		if quantity == 0 {
			if err := r.CartItems().DeleteByID(ctx, cartItemID); err != nil {
				return apperr.Internal()
			}
		} else {
			product, err := r.Products().FindByID(ctx, item.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.NotFound("product not found")
			}
			if err != nil {
				return apperr.Internal()
			}
			if quantity > product.Stock {
				return apperr.InsufficientStock("insufficient stock")
			}

			if err := r.CartItems().UpdateQuantity(ctx, cartItemID, quantity); err != nil {
				return apperr.Internal()
			}
		}

		items, err := r.CartItems().ListDetailedByUserID(ctx, p.UserID)
		if err != nil {
			return apperr.Internal()
		}
		out = CartOutput{Items: items}
		return nil
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// 明細削除
func (u *CartUsecase) RemoveCartItem(ctx context.Context, p model.Principal, cartItemID int64) (CartOutput, error) {
	if err := requireCustomer(p); err != nil {
		return CartOutput{}, err
	}
	if cartItemID <= 0 {
		return CartOutput{}, apperr.Validation("invalid id")
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.CartItems().FindByID(ctx, cartItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("cart item not found")
		}
		if err != nil {
			return apperr.Internal()
		}
		if item.UserID != p.UserID {
			return apperr.NotFound("cart item not found")
		}

		if err := r.CartItems().DeleteByID(ctx, cartItemID); err != nil {
			return apperr.Internal()
		}

		items, err := r.CartItems().ListDetailedByUserID(ctx, p.UserID)
		if err != nil {
			return apperr.Internal()
		}
		out = CartOutput{Items: items}
		return nil
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// 管理者によるカート明細のステータス変更。
// 承認・却下は注文や在庫には何も影響しないラベル。
func (u *CartUsecase) AdminUpdateCartItemStatus(ctx context.Context, p model.Principal, cartItemID int64, status string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if cartItemID <= 0 {
		return apperr.Validation("invalid id")
	}
	if !model.ValidCartStatus(status) {
		return apperr.Validation("invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.CartItems().UpdateStatus(ctx, cartItemID, model.CartStatus(status))
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("cart item not found")
		}
		if err != nil {
			return apperr.Internal()
		}
		return nil
	})
}
