package iorderitemrepo

import (
	"context"

	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for order item repository.
type IOrderItemRepository interface {
	// BulkInsert returns the inserted rows in input order.
	BulkInsert(
		ctx context.Context,
		cmds []orderitem.CreateOrderItemCommand,
	) ([]orderitem.OrderItem, error)
	Query(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
}
