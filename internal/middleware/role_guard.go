package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickcart/internal/domain/model"
)

//contextに入っているroleがadminかどうかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "unauthorized"))
			}

			//customerは拒否、adminだけ許可
			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden", "admin only"))
			}

			return next(c)
		}
	}
}

// customerだけ許可（管理者アカウントで顧客操作はさせない）。
func CustomerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "unauthorized"))
			}

			if role != string(model.RoleCustomer) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden", "customer only"))
			}

			return next(c)
		}
	}
}
