// Package memory is an in-process storage backend with the same
// transactional guarantees as the Postgres one for a single process.
//
// A transaction takes the store-wide lock, works on a private copy of the
// data and swaps it in on commit. Operations outside a transaction take the
// lock for their own duration.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/corray333/backend-labs/grocery/internal/dal/uow"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
)

type state struct {
	items        map[int64]item.Item
	itemSeq      int64
	orders       map[int64]order.Order
	orderSeq     int64
	orderItems   []orderitem.OrderItem
	orderItemSeq int64
	users        map[int64]user.User
}

func newState() *state {
	return &state{
		items:  map[int64]item.Item{},
		orders: map[int64]order.Order{},
		users:  map[int64]user.User{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.items = maps.Clone(s.items)
	c.orders = maps.Clone(s.orders)
	c.orderItems = slices.Clone(s.orderItems)
	c.users = maps.Clone(s.users)

	return &c
}

// Store holds all data of the memory backend.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore creates an empty store with the given users.
func NewStore(users ...user.User) *Store {
	s := &Store{
		st:  newState(),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, u := range users {
		s.PutUser(u)
	}

	return s
}

// PutUser inserts or replaces a user.
func (s *Store) PutUser(u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	s.st.users[u.ID] = u
}

// Factory returns a uow.Factory over the store.
func (s *Store) Factory() uow.Factory {
	return func() uow.UnitOfWork {
		return s.NewUnitOfWork()
	}
}

// NewUnitOfWork creates a unit of work over the store.
func (s *Store) NewUnitOfWork() uow.UnitOfWork {
	u := &unitOfWork{store: s}
	u.bind(&view{store: s})

	return u
}

// view resolves the state an operation works on.
type view struct {
	store *Store
	tx    *state
}

func (v *view) with(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.tx != nil {
		return fn(v.tx)
	}

	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	return fn(v.store.st)
}
