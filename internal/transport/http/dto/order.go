package dto

import (
	"io"

	"github.com/corray333/backend-labs/grocery/internal/service/models/inventory"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
)

type orderLineRequest struct {
	ItemID   int64 `json:"itemId"   validate:"required,gt=0"`
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

type placeOrderRequest struct {
	UserID int64              `json:"userId" validate:"required,gt=0"`
	Items  []orderLineRequest `json:"items"  validate:"dive"`
}

// PlaceOrder decodes an order placement request.
func PlaceOrder(body io.Reader) (order.PlaceOrderCommand, error) {
	var req placeOrderRequest
	if err := DecodeJSON(body, &req); err != nil {
		return order.PlaceOrderCommand{}, err
	}
	if err := Validate(&req); err != nil {
		return order.PlaceOrderCommand{}, err
	}

	lines := make([]order.LineRequest, len(req.Items))
	for i, it := range req.Items {
		lines[i] = order.LineRequest{ItemID: it.ItemID, Quantity: it.Quantity}
	}

	return order.PlaceOrderCommand{UserID: req.UserID, Lines: lines}, nil
}

type manageInventoryRequest struct {
	ItemID    int64  `json:"itemId"    validate:"required,gt=0"`
	Operation string `json:"operation"`
	Quantity  int64  `json:"quantity"  validate:"gte=0"`
}

// ManageInventory decodes an inventory adjustment request. The operation
// name is checked by the inventory service.
func ManageInventory(body io.Reader) (inventory.AdjustInventoryCommand, error) {
	var req manageInventoryRequest
	if err := DecodeJSON(body, &req); err != nil {
		return inventory.AdjustInventoryCommand{}, err
	}
	if err := Validate(&req); err != nil {
		return inventory.AdjustInventoryCommand{}, err
	}

	return inventory.AdjustInventoryCommand{
		ItemID:    req.ItemID,
		Operation: inventory.Operation(req.Operation),
		Quantity:  req.Quantity,
	}, nil
}

// ListOrdersQuery is the query string of a user's order history.
type ListOrdersQuery struct {
	Page     int `schema:"page"`
	PageSize int `schema:"pageSize"`
}
