package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quickcart/internal/apperr"
	"quickcart/internal/domain/model"
	"quickcart/internal/middleware"
	"quickcart/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := apperr.As(err); ok {
		return c.JSON(e.Status, ErrorResponse{Error: string(e.Kind), Message: e.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: "internal error"})
}

// contextからプリンシパルを取り出す。無ければ401を返す側で処理する
func getPrincipal(c echo.Context) (model.Principal, bool) {
	return middleware.PrincipalFromContext(c)
}

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
}

func (h *ProductHandler) list(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}
