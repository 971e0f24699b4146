package postgresrepo

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/grocery/internal/dal/postgres"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var columns = []string{"id", "user_id", "total_amount", "status", "order_date", "created_at", "updated_at"}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id          int64           `db:"id"`
	UserId      int64           `db:"user_id"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Status      string          `db:"status"`
	OrderDate   time.Time       `db:"order_date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:          o.Id,
		UserID:      o.UserId,
		TotalAmount: o.TotalAmount,
		Status:      status,
		OrderDate:   o.OrderDate,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}, nil
}

func (o *OrderDal) scanTargets() []any {
	return []any{&o.Id, &o.UserId, &o.TotalAmount, &o.Status, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts an order header and returns it with its id.
func (r *PostgresOrderRepository) Create(ctx context.Context, cmd order.CreateOrderCommand) (*order.Order, error) {
	orderDate := cmd.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	sql, args, err := r.sb.
		Insert("orders").
		Columns("user_id", "total_amount", "status", "order_date").
		Values(cmd.UserID, cmd.TotalAmount, cmd.Status, orderDate).
		Suffix("RETURNING id, user_id, total_amount, status, order_date, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	var dal OrderDal
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(dal.scanTargets()...); err != nil {
		return nil, errors.Wrap(err, "failed to insert order")
	}

	return dal.ToModel()
}

// FindByID returns the order with the given id or nil.
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	sql, args, err := r.sb.Select(columns...).From("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(dal.scanTargets()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find order %d", id)
	}

	return dal.ToModel()
}

// Query retrieves orders based on filter criteria, newest first, together
// with the number of orders matching the filter.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, int64, error) {
	where := sq.And{}
	if len(filter.Ids) > 0 {
		where = append(where, sq.Eq{"id": filter.Ids})
	}
	if len(filter.UserIds) > 0 {
		where = append(where, sq.Eq{"user_id": filter.UserIds})
	}

	countSQL, countArgs, err := r.sb.Select("count(*)").From("orders").Where(where).ToSql()
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to build count query")
	}

	var total int64
	if err := r.conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	query := r.sb.
		Select(columns...).
		From("orders").
		Where(where).
		OrderBy("order_date DESC", "id DESC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to query orders")
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		var dal OrderDal
		if err := rows.Scan(dal.scanTargets()...); err != nil {
			return nil, 0, errors.Wrap(err, "failed to scan order")
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, 0, errors.Wrap(err, "failed to convert order dal to model")
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "rows iteration error")
	}

	return result, total, nil
}
