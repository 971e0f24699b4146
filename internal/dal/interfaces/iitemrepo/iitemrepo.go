package iitemrepo

import (
	"context"

	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
)

// IItemRepository is an interface for grocery item repository.
type IItemRepository interface {
	Create(ctx context.Context, cmd item.CreateItemCommand) (*item.Item, error)
	// FindByID returns nil when the item does not exist.
	FindByID(ctx context.Context, id int64) (*item.Item, error)
	// FindByName returns nil when no item has the name.
	FindByName(ctx context.Context, name string) (*item.Item, error)
	// LockByIDs returns the existing items among ids and locks them until the
	// surrounding transaction ends.
	LockByIDs(ctx context.Context, ids []int64) (map[int64]item.Item, error)
	Query(ctx context.Context, filter *item.QueryItemsModel) ([]item.Item, int64, error)
	Update(ctx context.Context, cmd item.UpdateItemCommand) (*item.Item, error)
	SetQuantity(ctx context.Context, id int64, quantity int64) (*item.Item, error)
	// DecrementQuantity subtracts n only while stock stays non-negative.
	// It returns nil when the condition does not hold.
	DecrementQuantity(ctx context.Context, id int64, n int64) (*item.Item, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
