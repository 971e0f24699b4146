package iauditrepo

import (
	"context"

	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
)

// IAuditorRepository is interface for order event publisher.
type IAuditorRepository interface {
	LogOrderPlaced(ctx context.Context, details order.Details) error
}
