package repository

import (
	"context"

	"quickcart/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。見つからなければ(nil, nil)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//adminが1人でも存在するか（起動時シードの判定用）
	AdminExists(ctx context.Context) (bool, error)
}
