package order

import (
	"database/sql/driver"
	"time"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPlaced Status = "Placed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// ParseStatus parses a stored status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusPlaced.String():
		return StatusPlaced, nil
	default:
		return "", errs.Invalid("status", "invalid order status "+s)
	}
}

// MaxTotalAmount is the largest order total that can be stored.
var MaxTotalAmount = decimal.New(9999999999, -2)

// Order represents an order header.
type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      Status          `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Details is an order together with its lines.
type Details struct {
	Order      Order                 `json:"order"`
	OrderItems []orderitem.OrderItem `json:"orderItems"`
}

// Page is one page of a user's orders.
type Page struct {
	TotalCount  int64   `json:"totalCount"`
	CurrentPage int     `json:"currentPage"`
	PageSize    int     `json:"pageSize"`
	Orders      []Order `json:"orders"`
}

// CreateOrderCommand carries the fields of a new order header.
type CreateOrderCommand struct {
	UserID      int64
	TotalAmount decimal.Decimal
	Status      Status
	OrderDate   time.Time
}
