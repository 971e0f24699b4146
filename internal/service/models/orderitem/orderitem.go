package orderitem

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one item-quantity-price line of an order.
// Price is the unit price captured when the order was placed.
type OrderItem struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"orderId"`
	ItemID     int64           `json:"itemId"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CreateOrderItemCommand carries the fields of a new order line.
type CreateOrderItemCommand struct {
	OrderID  int64
	ItemID   int64
	Quantity int64
	Price    decimal.Decimal
}

// TotalPrice returns quantity times unit price.
func (c CreateOrderItemCommand) TotalPrice() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(c.Quantity))
}
