package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindValidation       ErrorKind = "validation_error"
	KindNotFound         ErrorKind = "not_found"
	KindItemUnavailable  ErrorKind = "item_unavailable"
	KindItemNotFound     ErrorKind = "item_not_found"
	KindInvalidQuantity  ErrorKind = "invalid_quantity"
	KindEmptyOrder       ErrorKind = "empty_order"
	KindInvalidStatus    ErrorKind = "invalid_status"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindForbidden        ErrorKind = "forbidden"
	KindCannotCancel     ErrorKind = "cannot_cancel"
	KindRestaurantClosed ErrorKind = "restaurant_closed"
	KindStorage          ErrorKind = "storage_error"
)

// Error is the failure type returned by every service operation.
// errors.Is matches two *Error values by Kind, so callers can test
// against the sentinels below.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrValidation       = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrItemUnavailable  = &Error{Kind: KindItemUnavailable, Message: "item is currently unavailable"}
	ErrItemNotFound     = &Error{Kind: KindItemNotFound, Message: "menu item not found"}
	ErrInvalidQuantity  = &Error{Kind: KindInvalidQuantity, Message: "quantity must be at least 1"}
	ErrEmptyOrder       = &Error{Kind: KindEmptyOrder, Message: "order must contain at least one item"}
	ErrInvalidStatus    = &Error{Kind: KindInvalidStatus, Message: "unrecognized order status"}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Message: "not authorized"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "insufficient privileges"}
	ErrCannotCancel     = &Error{Kind: KindCannotCancel, Message: "only orders with PLACED status can be cancelled"}
	ErrRestaurantClosed = &Error{Kind: KindRestaurantClosed, Message: "restaurant is currently closed"}
	ErrStorage          = &Error{Kind: KindStorage, Message: "storage failure"}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// storageError wraps a persistence failure. Record-not-found is reported as
// notFound instead, because callers treat it as a normal outcome.
func storageError(op string, err error, notFound *Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return &Error{Kind: KindStorage, Message: op, Err: err}
}

// KindOf returns the kind of err, or KindStorage for foreign errors.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindStorage
}
