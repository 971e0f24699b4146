package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
)

// IOrderRepository is an interface for order repository.
type IOrderRepository interface {
	Create(ctx context.Context, cmd order.CreateOrderCommand) (*order.Order, error)
	FindByID(ctx context.Context, id int64) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, int64, error)
}
