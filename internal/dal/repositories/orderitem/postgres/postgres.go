package postgresrepo

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/grocery/internal/dal/postgres"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const insertOrderItemSQL = `
	INSERT INTO order_items (order_id, item_id, quantity, price, total_price)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, order_id, item_id, quantity, price, total_price, created_at, updated_at
`

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id         int64           `db:"id"`
	OrderId    int64           `db:"order_id"`
	ItemId     int64           `db:"item_id"`
	Quantity   int64           `db:"quantity"`
	Price      decimal.Decimal `db:"price"`
	TotalPrice decimal.Decimal `db:"total_price"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ID:         oi.Id,
		OrderID:    oi.OrderId,
		ItemID:     oi.ItemId,
		Quantity:   oi.Quantity,
		Price:      oi.Price,
		TotalPrice: oi.TotalPrice,
		CreatedAt:  oi.CreatedAt,
		UpdatedAt:  oi.UpdatedAt,
	}
}

func (oi *OrderItemDal) scan(row pgx.Row) error {
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&oi.Id,
		&oi.OrderId,
		&oi.ItemId,
		&oi.Quantity,
		&oi.Price,
		&oi.TotalPrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	oi.CreatedAt = createdAt.Time
	oi.UpdatedAt = updatedAt.Time

	return nil
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts all lines in one batch round trip. Results keep the input order.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	cmds []orderitem.CreateOrderItemCommand,
) ([]orderitem.OrderItem, error) {
	if len(cmds) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	batch := &pgx.Batch{}
	for _, cmd := range cmds {
		batch.Queue(insertOrderItemSQL, cmd.OrderID, cmd.ItemID, cmd.Quantity, cmd.Price, cmd.TotalPrice())
	}

	results := r.conn.SendBatch(ctx, batch)
	defer results.Close()

	inserted := make([]orderitem.OrderItem, 0, len(cmds))
	for range cmds {
		var dal OrderItemDal
		if err := dal.scan(results.QueryRow()); err != nil {
			return nil, errors.Wrap(err, "failed to bulk insert order items")
		}
		inserted = append(inserted, dal.ToModel())
	}

	if err := results.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close batch")
	}

	return inserted, nil
}

// Query retrieves order items based on filter criteria in insertion order.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select(
			"id",
			"order_id",
			"item_id",
			"quantity",
			"price",
			"total_price",
			"created_at",
			"updated_at",
		).
		From("order_items").
		OrderBy("id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	if len(filter.ItemIds) > 0 {
		query = query.Where(sq.Eq{"item_id": filter.ItemIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query order items")
	}
	defer rows.Close()

	result := []orderitem.OrderItem{}
	for rows.Next() {
		var dal OrderItemDal
		if err := dal.scan(rows); err != nil {
			return nil, errors.Wrap(err, "failed to scan order item")
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration error")
	}

	return result, nil
}
