package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"quickcart/internal/config"
	"quickcart/internal/middleware"
	"quickcart/internal/usecase"
)

// /admin/carts のHTTP
type AdminCartHandler struct {
	cartUC  *usecase.CartUsecase
	statsUC *usecase.AdminStatsUsecase
}

// DI
func NewAdminCartHandler(cartUC *usecase.CartUsecase, statsUC *usecase.AdminStatsUsecase) *AdminCartHandler {
	return &AdminCartHandler{cartUC: cartUC, statsUC: statsUC}
}

func (h *AdminCartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/carts")
	g.Use(middleware.AuthJWT(cfg), middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *AdminCartHandler) list(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	rows, err := h.statsUC.Carts(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, rows)
}

func (h *AdminCartHandler) updateStatus(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Message: "invalid id"})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Message: "invalid body"})
	}

	if err := h.cartUC.AdminUpdateCartItemStatus(c.Request().Context(), p, itemID, req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "cart status updated"})
}
