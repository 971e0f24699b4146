package memory

import (
	"context"

	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iitemrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iuserrepo"
	"github.com/pkg/errors"
)

type unitOfWork struct {
	store         *Store
	tx            *state
	itemRepo      *ItemRepository
	orderRepo     *OrderRepository
	orderItemRepo *OrderItemRepository
	userRepo      *UserRepository
}

func (u *unitOfWork) bind(v *view) {
	u.itemRepo = &ItemRepository{view: v}
	u.orderRepo = &OrderRepository{view: v}
	u.orderItemRepo = &OrderItemRepository{view: v}
	u.userRepo = &UserRepository{view: v}
}

func (u *unitOfWork) ItemRepository() iitemrepo.IItemRepository {
	return u.itemRepo
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) UserRepository() iuserrepo.IUserRepository {
	return u.userRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	u.tx = u.store.st.clone()
	u.bind(&view{store: u.store, tx: u.tx})

	return nil
}

func (u *unitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return nil
	}

	u.store.st = u.tx
	u.release()

	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return nil
	}

	u.release()

	return nil
}

func (u *unitOfWork) release() {
	u.tx = nil
	u.bind(&view{store: u.store})
	u.store.mu.Unlock()
}
