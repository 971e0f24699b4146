package postgresrepo

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/grocery/internal/dal/postgres"
	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// UserDal represents user data access layer model.
type UserDal struct {
	Id        int64     `db:"id"`
	Username  string    `db:"username"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts UserDal to service layer User model.
func (u *UserDal) ToModel() *user.User {
	return &user.User{
		ID:        u.Id,
		Username:  u.Username,
		Role:      user.Role(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PostgresUserRepository represents a Postgres user repository.
type PostgresUserRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.GenericConn) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindByID returns the user with the given id or nil.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	sql, args, err := r.sb.
		Select("id", "username", "role", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	var dal UserDal
	err = r.conn.QueryRow(ctx, sql, args...).
		Scan(&dal.Id, &dal.Username, &dal.Role, &dal.CreatedAt, &dal.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find user %d", id)
	}

	return dal.ToModel(), nil
}
