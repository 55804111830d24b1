package repository

import (
	"context"
	"errors"

	"quickcart/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// id昇順の全件
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)

	// 部分更新。fieldsには指定されたカラムだけを入れる
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error

	// 物理削除。注文明細からの参照チェックはusecase側で行う
	Delete(ctx context.Context, id int64) error
}
