package item

import (
	"math"
	"strings"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
)

// SortField is a sortable item attribute.
type SortField string

const (
	SortByID        SortField = "id"
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByQuantity  SortField = "quantity"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// SortOrder is a sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParseSortField parses a sort field name. An empty string yields the default.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case "":
		return SortByCreatedAt, nil
	case SortByID, SortByName, SortByPrice, SortByQuantity, SortByCreatedAt, SortByUpdatedAt:
		return f, nil
	default:
		return "", errs.Invalid("sortBy", "sortBy must be one of id, name, price, quantity, createdAt, updatedAt")
	}
}

// ParseSortOrder parses a case-insensitive sort direction. An empty string
// yields the default.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToUpper(s)); o {
	case "":
		return SortDesc, nil
	case SortAsc, SortDesc:
		return o, nil
	default:
		return "", errs.Invalid("sortOrder", "sortOrder must be ASC or DESC")
	}
}

// QueryItemsModel represents filter, paging and sorting parameters for listing items.
type QueryItemsModel struct {
	InStockOnly bool
	Page        int
	PageSize    int
	SortBy      SortField
	SortOrder   SortOrder
}

// Normalize fills defaults and validates the paging parameters.
func (q *QueryItemsModel) Normalize() error {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page < 0 {
		return errs.Invalid("page", "page must be a positive integer")
	}
	if q.PageSize < 0 || q.PageSize > MaxPageSize {
		return errs.Invalid("pageSize", "pageSize must be between 1 and 100")
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return errs.Invalid("page", "page is too large")
	}

	var err error
	if q.SortBy, err = ParseSortField(string(q.SortBy)); err != nil {
		return err
	}
	if q.SortOrder, err = ParseSortOrder(string(q.SortOrder)); err != nil {
		return err
	}

	return nil
}

// Limit returns the page size.
func (q QueryItemsModel) Limit() int {
	return q.PageSize
}

// Offset returns the number of records skipped before the page.
func (q QueryItemsModel) Offset() int {
	return (q.Page - 1) * q.PageSize
}
