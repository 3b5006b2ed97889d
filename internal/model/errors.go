package model

import (
	"errors"
	"fmt"
)

// Error represents a domain rule violation detected by the ledger, the
// order engine, or the store.
//
// Domain errors include:
//   - Not found: a referenced product/customer/order/line does not exist
//   - Insufficient stock: a reservation exceeds available stock
//   - Invalid amount: a reduction exceeds the quantity present
//   - Duplicates: creation collides with an existing key/name/line
//
// Errors carry structured fields so the CLI boundary can report them
// without parsing message text.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Entity names the record kind involved (product, customer, order,
	// order line).
	Entity string

	// Key identifies the specific record, when known.
	Key string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes domain errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a referenced record does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInsufficientStock indicates a reservation or reduction
	// exceeds the product's available stock.
	ErrCodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"

	// ErrCodeInvalidAmount indicates a requested amount is out of range
	// for the operation (non-positive, or exceeding the line quantity).
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// ErrCodeDuplicateKey indicates a creation collided with an existing
	// unique key.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeDuplicateName indicates a customer name is already taken.
	ErrCodeDuplicateName ErrorCode = "DUPLICATE_NAME"

	// ErrCodeDuplicateLine indicates a first-time product add where a
	// line already exists for that (order, product) pair.
	ErrCodeDuplicateLine ErrorCode = "DUPLICATE_LINE"

	// ErrCodeProductInUse indicates a product removal was rejected
	// because order lines still reference it.
	ErrCodeProductInUse ErrorCode = "PRODUCT_IN_USE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Entity != "" && e.Key != "" {
		return fmt.Sprintf("%s: %s (%s=%s)", e.Code, e.Message, e.Entity, e.Key)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Entity)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNotFound creates an Error for a missing record.
func NewNotFound(entity, key string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Entity:  entity,
		Key:     key,
		Message: fmt.Sprintf("%s %q was not found", entity, key),
	}
}

// NewInsufficientStock creates an Error for a reservation exceeding
// available stock.
func NewInsufficientStock(code string, want, have int) *Error {
	return &Error{
		Code:    ErrCodeInsufficientStock,
		Entity:  "product",
		Key:     code,
		Message: fmt.Sprintf("not enough available product (want %d, have %d)", want, have),
	}
}

// NewInvalidAmount creates an Error for an out-of-range amount.
func NewInvalidAmount(message string) *Error {
	return &Error{Code: ErrCodeInvalidAmount, Message: message}
}

// NewDuplicateKey creates an Error for a unique-key collision.
func NewDuplicateKey(entity, key string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateKey,
		Entity:  entity,
		Key:     key,
		Message: fmt.Sprintf("%s %q already exists", entity, key),
	}
}

// NewDuplicateName creates an Error for a taken customer name.
func NewDuplicateName(name string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateName,
		Entity:  "customer",
		Key:     name,
		Message: fmt.Sprintf("a customer named %q already exists", name),
	}
}

// NewDuplicateLine creates an Error for an add-product call against an
// order that already holds a line for the product.
func NewDuplicateLine(orderID int64, code string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateLine,
		Entity:  "order line",
		Key:     fmt.Sprintf("%d/%s", orderID, code),
		Message: "product is already on the order; use add-count to grow the line",
	}
}

// NewProductInUse creates an Error for a product removal blocked by
// existing order lines.
func NewProductInUse(code string) *Error {
	return &Error{
		Code:    ErrCodeProductInUse,
		Entity:  "product",
		Key:     code,
		Message: "product is referenced by order lines and cannot be removed",
	}
}

// codeIs reports whether err is (or wraps) a domain Error with the given
// code.
func codeIs(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsNotFound returns true for missing-record errors.
func IsNotFound(err error) bool { return codeIs(err, ErrCodeNotFound) }

// IsInsufficientStock returns true for stock-shortage errors.
func IsInsufficientStock(err error) bool { return codeIs(err, ErrCodeInsufficientStock) }

// IsInvalidAmount returns true for out-of-range amount errors.
func IsInvalidAmount(err error) bool { return codeIs(err, ErrCodeInvalidAmount) }

// IsDuplicateKey returns true for unique-key collision errors.
func IsDuplicateKey(err error) bool { return codeIs(err, ErrCodeDuplicateKey) }

// IsDuplicateName returns true for customer-name collision errors.
func IsDuplicateName(err error) bool { return codeIs(err, ErrCodeDuplicateName) }

// IsDuplicateLine returns true for duplicate order-line errors.
func IsDuplicateLine(err error) bool { return codeIs(err, ErrCodeDuplicateLine) }

// IsProductInUse returns true for referenced-product removal errors.
func IsProductInUse(err error) bool { return codeIs(err, ErrCodeProductInUse) }
