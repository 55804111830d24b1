package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	repo "quickcart/internal/repository"
)

// ProductUsecase はカタログの公開一覧と管理者CRUD。
type ProductUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewProductUsecase(tx repo.TransactionManager) *ProductUsecase {
	return &ProductUsecase{tx: tx}
}

type AdminCreateProductInput struct {
	Name         string
	Category     string
	Price        *decimal.Decimal
	Stock        int64
	ReorderLevel *int64
}

// 部分更新：nilのフィールドは変更しない。
type ProductPatch struct {
	Name         *string
	Category     *string
	Price        *decimal.Decimal
	Stock        *int64
	ReorderLevel *int64
}

// 公開の商品一覧（id昇順）。認証不要。
func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		products, err = r.Products().List(ctx)
		if err != nil {
			return apperr.Internal()
		}
		return nil
	})
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 管理者用の商品一覧（reorder_levelを含む全項目）。
func (u *ProductUsecase) AdminListProducts(ctx context.Context, p model.Principal) ([]model.Product, error) {
	if err := requireAdmin(p); err != nil {
		return []model.Product{}, err
	}
	return u.ListProducts(ctx)
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, p model.Principal, in AdminCreateProductInput) (int64, error) {
	if err := requireAdmin(p); err != nil {
		return 0, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil {
		return 0, apperr.Validation("name and price are required")
	}
	if in.Price.IsNegative() {
		return 0, apperr.Validation("price must be >= 0")
	}
	if in.Stock < 0 {
		return 0, apperr.Validation("stock must be >= 0")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "General"
	}

	reorderLevel := int64(5)
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return 0, apperr.Validation("reorder_level must be >= 0")
		}
		reorderLevel = *in.ReorderLevel
	}

	var productID int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Products().Create(ctx, model.Product{
			Name:         name,
			Category:     category,
			Price:        *in.Price,
			Stock:        in.Stock,
			ReorderLevel: reorderLevel,
		})
		if err != nil {
			return apperr.Internal()
		}
		productID = created.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return productID, nil
}

// 部分更新。指定されたフィールドだけを1トランザクションで適用する。
func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, p model.Principal, productID int64, patch ProductPatch) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if productID <= 0 {
		return apperr.Validation("invalid product id")
	}

	fields := map[string]interface{}{}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return apperr.Validation("name must not be empty")
		}
		fields["name"] = name
	}
	if patch.Category != nil {
		fields["category"] = strings.TrimSpace(*patch.Category)
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return apperr.Validation("price must be >= 0")
		}
		fields["price"] = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return apperr.Validation("stock must be >= 0")
		}
		fields["stock"] = *patch.Stock
	}
	if patch.ReorderLevel != nil {
		if *patch.ReorderLevel < 0 {
			return apperr.Validation("reorder_level must be >= 0")
		}
		fields["reorder_level"] = *patch.ReorderLevel
	}

	if len(fields) == 0 {
		return apperr.Validation("no fields to update")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.NotFound("product not found")
			}
			return apperr.Internal()
		}

		if err := r.Products().UpdateFields(ctx, productID, fields); err != nil {
			return apperr.Internal()
		}
		return nil
	})
}

// 削除。注文明細から参照されている商品は消せない。
func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, p model.Principal, productID int64) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if productID <= 0 {
		return apperr.Validation("invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.NotFound("product not found")
			}
			return apperr.Internal()
		}

		count, err := r.OrderItems().CountByProductID(ctx, productID)
		if err != nil {
			return apperr.Internal()
		}
		if count > 0 {
			return apperr.Conflict("cannot delete product that has been ordered")
		}

		// カート行の参照は削除を妨げない（明細と違い履歴ではないため）
		if err := r.Products().Delete(ctx, productID); err != nil {
			return apperr.Internal()
		}
		return nil
	})
}
