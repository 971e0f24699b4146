package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corray333/backend-labs/grocery/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// Config holds connection settings read from GROCERY_PG_* variables.
type Config struct {
	DSN      string `envconfig:"DSN"`
	Host     string `envconfig:"HOST"      default:"localhost"`
	Port     int    `envconfig:"PORT"      default:"5432"`
	User     string `envconfig:"USER"      default:"postgres"`
	Password string `envconfig:"PASSWORD"`
	DB       string `envconfig:"DB"        default:"grocery"`
	SSLMode  string `envconfig:"SSLMODE"   default:"disable"`
	MaxConns int32  `envconfig:"MAX_CONNS" default:"10"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("GROCERY_PG", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "read postgres env")
	}

	return cfg, nil
}

// ConnString returns DSN when set, otherwise a keyword/value connection string.
func (c Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

// Client represents a Postgres client.
type Client struct {
	pool *pgxpool.Pool
}

// Pool returns the underlying connection pool.
func (p *Client) Pool() *pgxpool.Pool {
	return p.pool
}

// Close closes the database connection for graceful shutdown.
func (p *Client) Close() {
	p.pool.Close()
}

// NewClient opens a pool and checks connectivity.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, errors.Wrap(err, "parse postgres config")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, "create postgres pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	slog.Info("Postgres connected", "host", poolCfg.ConnConfig.Host, "db", poolCfg.ConnConfig.Database)

	return &Client{
		pool: pool,
	}, nil
}

// MustNewClient creates a new Postgres client from the environment and panics on failure.
func MustNewClient(ctx context.Context) *Client {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	client, err := NewClient(ctx, cfg)
	if err != nil {
		panic(err)
	}

	return client
}

// MigrateCommand is a goose command supported by Migrate.
type MigrateCommand string

const (
	MigrateUp     MigrateCommand = "up"
	MigrateDown   MigrateCommand = "down"
	MigrateStatus MigrateCommand = "status"
)

// Migrate runs embedded goose migrations over the pool.
func (p *Client) Migrate(ctx context.Context, cmd MigrateCommand) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	db := stdlib.OpenDBFromPool(p.pool)
	defer db.Close()

	var err error
	switch cmd {
	case MigrateUp:
		err = goose.UpContext(ctx, db, ".")
	case MigrateDown:
		err = goose.DownContext(ctx, db, ".")
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, ".")
	default:
		return errors.Errorf("unknown migrate command %q", cmd)
	}

	return errors.Wrapf(err, "goose %s", cmd)
}
