package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"quickcart/internal/config"
	"quickcart/internal/middleware"
	"quickcart/internal/usecase"
)

// /admin/products のHTTP
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type AdminCreateProductRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        *float64 `json:"price"`
	Stock        int64    `json:"stock"`
	ReorderLevel *int64   `json:"reorder_level"`
}

// 部分更新：来なかったフィールドはnilのまま渡す
type AdminUpdateProductRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price"`
	Stock        *int64   `json:"stock"`
	ReorderLevel *int64   `json:"reorder_level"`
}

type CreateProductResponse struct {
	ID int64 `json:"id"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/products")
	g.Use(middleware.AuthJWT(cfg), middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	products, err := h.uc.AdminListProducts(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	var req AdminCreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Message: "invalid body"})
	}

	in := usecase.AdminCreateProductInput{
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		in.Price = &price
	}

	productID, err := h.uc.AdminCreateProduct(c.Request().Context(), p, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateProductResponse{ID: productID})
}

func (h *AdminProductHandler) update(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Message: "invalid id"})
	}

	var req AdminUpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Message: "invalid body"})
	}

	patch := usecase.ProductPatch{
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		patch.Price = &price
	}

	if err := h.uc.AdminUpdateProduct(c.Request().Context(), p, productID, patch); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "product updated"})
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation", Message: "invalid id"})
	}

	if err := h.uc.AdminDeleteProduct(c.Request().Context(), p, productID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}
