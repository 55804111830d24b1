package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"quickcart/internal/config"
	"quickcart/internal/middleware"
	"quickcart/internal/usecase"
)

// /admin/orders のHTTP
type AdminOrderHandler struct {
	orderUC *usecase.OrderUsecase
	statsUC *usecase.AdminStatsUsecase
}

// DI
func NewAdminOrderHandler(orderUC *usecase.OrderUsecase, statsUC *usecase.AdminStatsUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: orderUC, statsUC: statsUC}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthJWT(cfg), middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	orders, err := h.statsUC.Orders(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Message: "invalid id"})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Message: "invalid body"})
	}

	if err := h.orderUC.AdminUpdateOrderStatus(c.Request().Context(), p, orderID, req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "order status updated"})
}
