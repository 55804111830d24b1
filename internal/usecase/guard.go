package usecase

import (
	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
)

// 各操作の入口で呼ぶロールチェック。
// 未認証は401、ロール違いは403。

func requireAuthenticated(p model.Principal) error {
	if p.IsAnonymous() {
		return apperr.Unauthorized()
	}
	return nil
}

func requireCustomer(p model.Principal) error {
	if err := requireAuthenticated(p); err != nil {
		return err
	}
	if p.Role != model.RoleCustomer {
		return apperr.Forbidden()
	}
	return nil
}

func requireAdmin(p model.Principal) error {
	if err := requireAuthenticated(p); err != nil {
		return err
	}
	if p.Role != model.RoleAdmin {
		return apperr.Forbidden()
	}
	return nil
}
