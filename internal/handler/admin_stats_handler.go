package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickcart/internal/config"
	"quickcart/internal/middleware"
	"quickcart/internal/usecase"
)

// /admin/summary, /admin/customers のHTTP
type AdminStatsHandler struct {
	uc *usecase.AdminStatsUsecase
}

// DI
func NewAdminStatsHandler(uc *usecase.AdminStatsUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{uc: uc}
}

func (h *AdminStatsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg), middleware.AdminRoleGuard())

	g.GET("/summary", h.summary)
	g.GET("/customers", h.customers)
}

func (h *AdminStatsHandler) summary(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	out, err := h.uc.Summary(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminStatsHandler) customers(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	rows, err := h.uc.Customers(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, rows)
}
