package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"backoffice/internal/validator"
)

var (
	//400 入力不正
	ErrValidation = errors.New("validation error")
	//404
	ErrNotFound = errors.New("not found")
	//409 競合
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// usecaseのエラー。handlerはStatusとMessageをそのまま返す。
// 種別(ErrValidationなど)と原因は errors.Is/As で辿れる。
type HTTPError struct {
	Status  int
	Message string
	kind    error
	cause   error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func validationError(format string, args ...any) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), kind: ErrValidation}
}

// validatorのエラーを400に変換
func fromValidator(err error) error {
	msg := strings.TrimPrefix(err.Error(), validator.ErrInvalidInput.Error()+": ")
	return &HTTPError{Status: http.StatusBadRequest, Message: msg, kind: ErrValidation, cause: err}
}

func notFoundError(what string) error {
	return &HTTPError{Status: http.StatusNotFound, Message: what + " not found", kind: ErrNotFound}
}

func conflictError(msg string) error {
	return &HTTPError{Status: http.StatusConflict, Message: msg, kind: ErrConflict}
}

// DBなどの想定外エラー。原因はログ用に保持する。
func dbError(err error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: "db error", kind: ErrInternal, cause: err}
}

// tx内で既に HTTPError になっているものはそのまま返す
func passOrDBError(err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return dbError(err)
}
