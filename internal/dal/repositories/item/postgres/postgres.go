package postgresrepo

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/grocery/internal/dal/postgres"
	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const table = "grocery_items"

var columns = []string{"id", "name", "price", "quantity", "created_at", "updated_at"}

var sortColumns = map[item.SortField]string{
	item.SortByID:        "id",
	item.SortByName:      "name",
	item.SortByPrice:     "price",
	item.SortByQuantity:  "quantity",
	item.SortByCreatedAt: "created_at",
	item.SortByUpdatedAt: "updated_at",
}

// ItemDal represents grocery item data access layer model.
type ItemDal struct {
	Id        int64           `db:"id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int64           `db:"quantity"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// ToModel converts ItemDal to service layer Item model.
func (d *ItemDal) ToModel() item.Item {
	return item.Item{
		ID:        d.Id,
		Name:      d.Name,
		Price:     d.Price,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d *ItemDal) scanTargets() []any {
	return []any{&d.Id, &d.Name, &d.Price, &d.Quantity, &d.CreatedAt, &d.UpdatedAt}
}

// PostgresItemRepository represents a Postgres grocery item repository.
type PostgresItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresItemRepository creates a new Postgres grocery item repository.
func NewPostgresItemRepository(conn postgres.GenericConn) *PostgresItemRepository {
	return &PostgresItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts an item. A name clash is reported as errs.ErrDuplicateName.
func (r *PostgresItemRepository) Create(ctx context.Context, cmd item.CreateItemCommand) (*item.Item, error) {
	query := r.sb.
		Insert(table).
		Columns("name", "price", "quantity").
		Values(cmd.Name, cmd.Price, cmd.Quantity).
		Suffix("RETURNING id, name, price, quantity, created_at, updated_at")

	it, err := r.queryOne(ctx, query)
	if postgres.IsUniqueViolation(err) {
		return nil, errs.ErrDuplicateName
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert grocery item")
	}

	return it, nil
}

// FindByID returns the item with the given id or nil.
func (r *PostgresItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	it, err := r.queryOne(ctx, r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find grocery item %d", id)
	}

	return it, nil
}

// FindByName returns the item with the given name or nil.
func (r *PostgresItemRepository) FindByName(ctx context.Context, name string) (*item.Item, error) {
	it, err := r.queryOne(ctx, r.sb.Select(columns...).From(table).Where(sq.Eq{"name": name}))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find grocery item by name")
	}

	return it, nil
}

// LockByIDs selects the items with FOR UPDATE in ascending id order.
func (r *PostgresItemRepository) LockByIDs(ctx context.Context, ids []int64) (map[int64]item.Item, error) {
	result := make(map[int64]item.Item, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := r.sb.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": ids}).
		OrderBy("id").
		Suffix("FOR UPDATE")

	items, err := r.queryMany(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to lock grocery items")
	}
	for _, it := range items {
		result[it.ID] = it
	}

	return result, nil
}

// Query returns one page of items and the total number of matching items.
func (r *PostgresItemRepository) Query(
	ctx context.Context,
	filter *item.QueryItemsModel,
) ([]item.Item, int64, error) {
	where := sq.And{}
	if filter.InStockOnly {
		where = append(where, sq.Gt{"quantity": 0})
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[item.SortByCreatedAt]
	}
	direction := string(item.SortDesc)
	if filter.SortOrder == item.SortAsc {
		direction = string(item.SortAsc)
	}

	pageQuery := r.sb.
		Select(columns...).
		From(table).
		Where(where).
		OrderBy(column+" "+direction, "id "+direction).
		Limit(uint64(filter.Limit())).
		Offset(uint64(filter.Offset()))
	countQuery := r.sb.Select("count(*)").From(table).Where(where)

	var (
		items []item.Item
		total int64
	)
	count := func(ctx context.Context) error {
		sql, args, err := countQuery.ToSql()
		if err != nil {
			return errors.Wrap(err, "failed to build count query")
		}
		return errors.Wrap(r.conn.QueryRow(ctx, sql, args...).Scan(&total), "failed to count grocery items")
	}
	page := func(ctx context.Context) error {
		var err error
		items, err = r.queryMany(ctx, pageQuery)
		return errors.Wrap(err, "failed to query grocery items")
	}

	// A transaction connection cannot serve two queries at once.
	if !postgres.IsPool(r.conn) {
		if err := count(ctx); err != nil {
			return nil, 0, err
		}
		if err := page(ctx); err != nil {
			return nil, 0, err
		}
		return items, total, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return count(gctx) })
	g.Go(func() error { return page(gctx) })
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update writes the supplied fields of cmd and returns the stored item or nil
// when it does not exist.
func (r *PostgresItemRepository) Update(ctx context.Context, cmd item.UpdateItemCommand) (*item.Item, error) {
	query := r.sb.Update(table).Set("updated_at", sq.Expr("now()"))
	if cmd.Name != nil {
		query = query.Set("name", *cmd.Name)
	}
	if cmd.Price != nil {
		query = query.Set("price", *cmd.Price)
	}
	if cmd.Quantity != nil {
		query = query.Set("quantity", *cmd.Quantity)
	}
	query = query.
		Where(sq.Eq{"id": cmd.ID}).
		Suffix("RETURNING id, name, price, quantity, created_at, updated_at")

	it, err := r.queryOne(ctx, query)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case postgres.IsUniqueViolation(err):
		return nil, errs.ErrDuplicateName
	case err != nil:
		return nil, errors.Wrapf(err, "failed to update grocery item %d", cmd.ID)
	}

	return it, nil
}

// SetQuantity overwrites the stock level.
func (r *PostgresItemRepository) SetQuantity(ctx context.Context, id int64, quantity int64) (*item.Item, error) {
	query := r.sb.
		Update(table).
		Set("quantity", quantity).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, price, quantity, created_at, updated_at")

	it, err := r.queryOne(ctx, query)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set quantity of grocery item %d", id)
	}

	return it, nil
}

// DecrementQuantity subtracts n when at least n units are in stock.
func (r *PostgresItemRepository) DecrementQuantity(ctx context.Context, id int64, n int64) (*item.Item, error) {
	query := r.sb.
		Update(table).
		Set("quantity", sq.Expr("quantity - ?", n)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where(sq.GtOrEq{"quantity": n}).
		Suffix("RETURNING id, name, price, quantity, created_at, updated_at")

	it, err := r.queryOne(ctx, query)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decrement quantity of grocery item %d", id)
	}

	return it, nil
}

// Delete removes the item.
func (r *PostgresItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, errors.Wrap(err, "failed to build query")
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, errors.Wrapf(err, "failed to delete grocery item %d", id)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PostgresItemRepository) queryOne(ctx context.Context, query sq.Sqlizer) (*item.Item, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	var dal ItemDal
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(dal.scanTargets()...); err != nil {
		return nil, err
	}
	it := dal.ToModel()

	return &it, nil
}

func (r *PostgresItemRepository) queryMany(ctx context.Context, query sq.Sqlizer) ([]item.Item, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []item.Item{}
	for rows.Next() {
		var dal ItemDal
		if err := rows.Scan(dal.scanTargets()...); err != nil {
			return nil, errors.Wrap(err, "failed to scan grocery item")
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows iteration error")
	}

	return result, nil
}
