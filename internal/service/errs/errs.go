// Package errs holds the error taxonomy shared by services and transports.
//
// Every error returned by a service is either classified by one of the kind
// sentinels below (checked with errors.Is) or treated as an internal fault.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
)

var (
	ErrItemNotFound          = New(ErrNotFound, "Grocery item not found")
	ErrOrderNotFound         = New(ErrNotFound, "Order not found")
	ErrUserNotFound          = New(ErrNotFound, "User not found")
	ErrNoItemsFound          = New(ErrNotFound, "No grocery items found")
	ErrNoAvailableItemsFound = New(ErrNotFound, "No available grocery items found")
	ErrDuplicateName         = New(ErrConflict, "A grocery item with the same name already exists")
	ErrInsufficientStock     = New(ErrConflict, "Insufficient quantity in inventory")
	ErrUnknownOperation      = New(ErrInvalidOperation, "Invalid operation")
)

type kindError struct {
	kind error
	msg  string
}

// New creates an error of the given kind with a caller-facing message.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// ValidationError reports a bad or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

// Invalid creates a ValidationError.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnavailableItemsError lists every requested item that is missing or short
// on stock.
type UnavailableItemsError struct {
	ItemIDs []int64
}

func (e *UnavailableItemsError) Error() string {
	return "One or more items are not available in sufficient quantity"
}

func (e *UnavailableItemsError) Is(target error) bool {
	return target == ErrConflict
}

// Details renders the unavailable ids for logs.
func (e *UnavailableItemsError) Details() string {
	ids := make([]string, len(e.ItemIDs))
	for i, id := range e.ItemIDs {
		ids[i] = fmt.Sprint(id)
	}

	return "unavailable items: " + strings.Join(ids, ",")
}

// IsClientError reports whether err belongs to one of the caller-facing kinds.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidOperation)
}
