package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// エラー種別。レスポンスにはこの文字列をそのまま返す。
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// 業務エラー。StatusはHTTPステータスにそのまま対応する。
type Error struct {
	Status  int
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Kind, e.Message)
}

func New(status int, kind Kind, message string) error {
	return &Error{Status: status, Kind: kind, Message: message}
}

func Validation(message string) error {
	return New(http.StatusBadRequest, KindValidation, message)
}

func NotFound(message string) error {
	return New(http.StatusNotFound, KindNotFound, message)
}

func InsufficientStock(message string) error {
	return New(http.StatusConflict, KindInsufficientStock, message)
}

func Unauthorized() error {
	return New(http.StatusUnauthorized, KindUnauthorized, "unauthorized")
}

func Forbidden() error {
	return New(http.StatusForbidden, KindForbidden, "forbidden")
}

func Conflict(message string) error {
	return New(http.StatusConflict, KindConflict, message)
}

// ストア由来の詳細は外に出さない。
func Internal() error {
	return New(http.StatusInternalServerError, KindInternal, "internal error")
}

func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// 指定Kindのエラーかどうか。
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
