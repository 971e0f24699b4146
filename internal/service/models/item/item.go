package item

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a grocery item in the catalog.
type Item struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Page is one page of a catalog listing.
type Page struct {
	TotalCount  int64  `json:"totalCount"`
	CurrentPage int    `json:"currentPage"`
	PageSize    int    `json:"pageSize"`
	Items       []Item `json:"groceryItems"`
}
