package uow

import (
	"context"

	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iitemrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/postgres"
	itemrepo "github.com/corray333/backend-labs/grocery/internal/dal/repositories/item/postgres"
	orderrepo "github.com/corray333/backend-labs/grocery/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/backend-labs/grocery/internal/dal/repositories/orderitem/postgres"
	userrepo "github.com/corray333/backend-labs/grocery/internal/dal/repositories/user/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// UnitOfWork bundles the repositories of one logical operation. Before Begin
// the repositories run on the shared pool, after Begin they run inside the
// transaction until Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ItemRepository() iitemrepo.IItemRepository
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	UserRepository() iuserrepo.IUserRepository
}

// Factory returns a fresh unit of work. A unit of work is not reusable
// across requests.
type Factory func() UnitOfWork

type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	itemRepo      iitemrepo.IItemRepository
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	userRepo      iuserrepo.IUserRepository
}

// NewFactory returns a Factory producing Postgres units of work.
func NewFactory(client *postgres.Client) Factory {
	return func() UnitOfWork {
		return NewUnitOfWork(client)
	}
}

// NewUnitOfWork creates a unit of work over the client pool.
func NewUnitOfWork(client *postgres.Client) UnitOfWork {
	u := &unitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.GenericConn) {
	u.itemRepo = itemrepo.NewPostgresItemRepository(conn)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.userRepo = userrepo.NewPostgresUserRepository(conn)
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

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	u.tx = tx
	// Repositories are rebuilt on top of the transaction.
	u.bind(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	defer u.release()

	return errors.Wrap(u.tx.Commit(ctx), "failed to commit transaction")
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	defer u.release()

	err := u.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}

	return errors.Wrap(err, "failed to rollback transaction")
}

func (u *unitOfWork) release() {
	u.tx = nil
	u.bind(u.pool)
}
