package server

import (
	"github.com/labstack/echo/v4"

	"quickcart/internal/config"
	"quickcart/internal/handler"
)

// RouteHandlers はルート登録に必要なハンドラ一式。
type RouteHandlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Dashboard    *handler.DashboardHandler
	AdminProduct *handler.AdminProductHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminCart    *handler.AdminCartHandler
	AdminStats   *handler.AdminStatsHandler
}

func registerRoutes(e *echo.Echo, cfg config.Config, h RouteHandlers) {
	//公開
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)

	//要認証（顧客）
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Dashboard.RegisterRoutes(e, cfg)

	//要認証（管理者）
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminCart.RegisterRoutes(e, cfg)
	h.AdminStats.RegisterRoutes(e, cfg)
}
