package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/corray333/backend-labs/grocery/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers selectable with storage.driver.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// SetDefaults registers the values used when config.yaml omits a key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("server.http.port", "8080")
	v.SetDefault("server.http.read_header_timeout", "5s")
	v.SetDefault("server.http.write_timeout", "15s")
	v.SetDefault("server.http.idle_timeout", "60s")
	v.SetDefault("server.http.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.http.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.http.cors.allowed_headers", []string{"Content-Type", "X-User-ID", "X-Request-Id"})
	v.SetDefault("server.http.cors.max_age", 300)
	v.SetDefault("server.grpc.port", "9090")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("postgres.auto_migrate", true)

	v.SetDefault("catalog.empty_page_not_found", true)
	v.SetDefault("orders.reject_empty", false)

	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.queue", "grocery.order.placed")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "grocery-svc")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

// Init loads .env when present, reads config.yaml and installs the default
// logger. A missing config file is not an error.
func Init() error {
	if err := godotenv.Load("./.env"); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "error while loading .env file")
	}

	SetDefaults(viper.GetViper())
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/grocery-svc")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("GROCERY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "error while reading config file")
		}
	}

	// Prices render as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	SetupLogger()

	return nil
}

// MustInit is Init that panics on failure.
func MustInit() {
	if err := Init(); err != nil {
		panic(err.Error())
	}
}

func SetupLogger() {
	handler := logger.NewHandler(&slog.HandlerOptions{
		Level: logger.ParseLevel(viper.GetString("log.level")),
	})
	log := slog.New(handler)
	slog.SetDefault(log)
}
