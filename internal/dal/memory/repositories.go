package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
)

// ItemRepository is the memory grocery item repository.
type ItemRepository struct {
	view *view
}

func nameTaken(st *state, name string, except int64) bool {
	for _, it := range st.items {
		if it.ID != except && it.Name == name {
			return true
		}
	}

	return false
}

func (r *ItemRepository) Create(ctx context.Context, cmd item.CreateItemCommand) (*item.Item, error) {
	var created item.Item
	err := r.view.with(ctx, func(st *state) error {
		if nameTaken(st, cmd.Name, 0) {
			return errs.ErrDuplicateName
		}

		st.itemSeq++
		now := r.view.store.now()
		created = item.Item{
			ID:        st.itemSeq,
			Name:      cmd.Name,
			Price:     cmd.Price,
			Quantity:  cmd.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		st.items[created.ID] = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	var found *item.Item
	err := r.view.with(ctx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			found = &it
		}
		return nil
	})

	return found, err
}

func (r *ItemRepository) FindByName(ctx context.Context, name string) (*item.Item, error) {
	var found *item.Item
	err := r.view.with(ctx, func(st *state) error {
		for _, it := range st.items {
			if it.Name == name {
				found = &it
				break
			}
		}
		return nil
	})

	return found, err
}

// LockByIDs returns the existing items. The transaction already holds the
// store lock.
func (r *ItemRepository) LockByIDs(ctx context.Context, ids []int64) (map[int64]item.Item, error) {
	result := make(map[int64]item.Item, len(ids))
	err := r.view.with(ctx, func(st *state) error {
		for _, id := range ids {
			if it, ok := st.items[id]; ok {
				result[id] = it
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func compareItems(field item.SortField) func(a, b item.Item) int {
	return func(a, b item.Item) int {
		var c int
		switch field {
		case item.SortByID:
			c = cmp.Compare(a.ID, b.ID)
		case item.SortByName:
			c = cmp.Compare(a.Name, b.Name)
		case item.SortByPrice:
			c = a.Price.Cmp(b.Price)
		case item.SortByQuantity:
			c = cmp.Compare(a.Quantity, b.Quantity)
		case item.SortByUpdatedAt:
			c = a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	}
}

func (r *ItemRepository) Query(ctx context.Context, filter *item.QueryItemsModel) ([]item.Item, int64, error) {
	var matched []item.Item
	err := r.view.with(ctx, func(st *state) error {
		for _, it := range st.items {
			if filter.InStockOnly && it.Quantity <= 0 {
				continue
			}
			matched = append(matched, it)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	compare := compareItems(filter.SortBy)
	slices.SortFunc(matched, func(a, b item.Item) int {
		if filter.SortOrder == item.SortAsc {
			return compare(a, b)
		}
		return compare(b, a)
	})

	return paginate(matched, filter.Offset(), filter.Limit()), int64(len(matched)), nil
}

func (r *ItemRepository) Update(ctx context.Context, cmd item.UpdateItemCommand) (*item.Item, error) {
	var updated *item.Item
	err := r.view.with(ctx, func(st *state) error {
		it, ok := st.items[cmd.ID]
		if !ok {
			return nil
		}
		if cmd.Name != nil && nameTaken(st, *cmd.Name, cmd.ID) {
			return errs.ErrDuplicateName
		}

		it = cmd.Apply(it)
		it.UpdatedAt = r.view.store.now()
		st.items[it.ID] = it
		updated = &it

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *ItemRepository) SetQuantity(ctx context.Context, id int64, quantity int64) (*item.Item, error) {
	return r.modifyQuantity(ctx, id, func(int64) (int64, bool) { return quantity, true })
}

func (r *ItemRepository) DecrementQuantity(ctx context.Context, id int64, n int64) (*item.Item, error) {
	return r.modifyQuantity(ctx, id, func(q int64) (int64, bool) { return q - n, q >= n })
}

func (r *ItemRepository) modifyQuantity(
	ctx context.Context,
	id int64,
	next func(q int64) (int64, bool),
) (*item.Item, error) {
	var updated *item.Item
	err := r.view.with(ctx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return nil
		}
		q, ok := next(it.Quantity)
		if !ok {
			return nil
		}

		it.Quantity = q
		it.UpdatedAt = r.view.store.now()
		st.items[id] = it
		updated = &it

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.view.with(ctx, func(st *state) error {
		if _, ok := st.items[id]; ok {
			delete(st.items, id)
			deleted = true
		}
		return nil
	})

	return deleted, err
}

// OrderRepository is the memory order repository.
type OrderRepository struct {
	view *view
}

func (r *OrderRepository) Create(ctx context.Context, cmd order.CreateOrderCommand) (*order.Order, error) {
	var created order.Order
	err := r.view.with(ctx, func(st *state) error {
		st.orderSeq++
		now := r.view.store.now()
		orderDate := cmd.OrderDate
		if orderDate.IsZero() {
			orderDate = now
		}
		created = order.Order{
			ID:          st.orderSeq,
			UserID:      cmd.UserID,
			TotalAmount: cmd.TotalAmount,
			Status:      cmd.Status,
			OrderDate:   orderDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		st.orders[created.ID] = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var found *order.Order
	err := r.view.with(ctx, func(st *state) error {
		if o, ok := st.orders[id]; ok {
			found = &o
		}
		return nil
	})

	return found, err
}

func (r *OrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, int64, error) {
	var matched []order.Order
	err := r.view.with(ctx, func(st *state) error {
		for _, o := range st.orders {
			if len(filter.Ids) > 0 && !slices.Contains(filter.Ids, o.ID) {
				continue
			}
			if len(filter.UserIds) > 0 && !slices.Contains(filter.UserIds, o.UserID) {
				continue
			}
			matched = append(matched, o)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	slices.SortFunc(matched, func(a, b order.Order) int {
		if c := b.OrderDate.Compare(a.OrderDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return paginate(matched, filter.Offset, filter.Limit), int64(len(matched)), nil
}

// OrderItemRepository is the memory order item repository.
type OrderItemRepository struct {
	view *view
}

func (r *OrderItemRepository) BulkInsert(
	ctx context.Context,
	cmds []orderitem.CreateOrderItemCommand,
) ([]orderitem.OrderItem, error) {
	inserted := make([]orderitem.OrderItem, 0, len(cmds))
	err := r.view.with(ctx, func(st *state) error {
		now := r.view.store.now()
		for _, cmd := range cmds {
			st.orderItemSeq++
			oi := orderitem.OrderItem{
				ID:         st.orderItemSeq,
				OrderID:    cmd.OrderID,
				ItemID:     cmd.ItemID,
				Quantity:   cmd.Quantity,
				Price:      cmd.Price,
				TotalPrice: cmd.TotalPrice(),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			st.orderItems = append(st.orderItems, oi)
			inserted = append(inserted, oi)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return inserted, nil
}

func (r *OrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	result := []orderitem.OrderItem{}
	err := r.view.with(ctx, func(st *state) error {
		for _, oi := range st.orderItems {
			if len(filter.Ids) > 0 && !slices.Contains(filter.Ids, oi.ID) {
				continue
			}
			if len(filter.OrderIds) > 0 && !slices.Contains(filter.OrderIds, oi.OrderID) {
				continue
			}
			if len(filter.ItemIds) > 0 && !slices.Contains(filter.ItemIds, oi.ItemID) {
				continue
			}
			result = append(result, oi)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paginate(result, filter.Offset, filter.Limit), nil
}

// UserRepository is the memory user repository.
type UserRepository struct {
	view *view
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var found *user.User
	err := r.view.with(ctx, func(st *state) error {
		if u, ok := st.users[id]; ok {
			found = &u
		}
		return nil
	})

	return found, err
}

func paginate[T any](records []T, offset, limit int) []T {
	if offset < 0 || offset >= len(records) {
		return []T{}
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	return records
}
