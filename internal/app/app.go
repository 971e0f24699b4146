package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/grocery/internal/config"
	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/memory"
	"github.com/corray333/backend-labs/grocery/internal/dal/postgres"
	"github.com/corray333/backend-labs/grocery/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/grocery/internal/dal/repositories/audit"
	"github.com/corray333/backend-labs/grocery/internal/dal/uow"
	"github.com/corray333/backend-labs/grocery/internal/otel"
	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
	"github.com/corray333/backend-labs/grocery/internal/service/services/catalogsvc"
	"github.com/corray333/backend-labs/grocery/internal/service/services/inventorysvc"
	"github.com/corray333/backend-labs/grocery/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/grocery/internal/service/services/usersvc"
	grpctransport "github.com/corray333/backend-labs/grocery/internal/transport/grpc"
	httptransport "github.com/corray333/backend-labs/grocery/internal/transport/http"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	grpcTransport  *grpctransport.GRPCTransport
	postgresClient *postgres.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp(ctx context.Context) *App {
	otelController := otel.MustInitOtel()

	a := &App{
		otelController: otelController,
	}

	factory := a.mustNewStorage(ctx)
	auditor := a.mustNewAuditor()

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithUnitOfWork(factory),
		catalogsvc.WithEmptyPageNotFound(viper.GetBool("catalog.empty_page_not_found")),
	)
	inventorySvc := inventorysvc.MustNewInventoryService(
		inventorysvc.WithUnitOfWork(factory),
	)
	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithUnitOfWork(factory),
		ordersvc.WithAuditor(auditor),
		ordersvc.WithRejectEmptyOrders(viper.GetBool("orders.reject_empty")),
	)
	userSvc := usersvc.MustNewUserService(
		usersvc.WithUnitOfWork(factory),
	)

	a.transport = httptransport.NewHTTPTransport(catalogSvc, inventorySvc, orderSvc, userSvc)
	a.transport.RegisterRoutes()

	grpcTransport, err := grpctransport.NewGRPCTransport()
	if err != nil {
		panic(err)
	}
	a.grpcTransport = grpcTransport

	return a
}

func (a *App) mustNewStorage(ctx context.Context) uow.Factory {
	switch driver := viper.GetString("storage.driver"); driver {
	case config.DriverMemory:
		var users []user.User
		if err := viper.UnmarshalKey("storage.memory.users", &users); err != nil {
			panic(err)
		}
		slog.Info("Using in-memory storage", "users", len(users))

		return memory.NewStore(users...).Factory()
	case config.DriverPostgres:
		a.postgresClient = postgres.MustNewClient(ctx)
		if viper.GetBool("postgres.auto_migrate") {
			if err := a.postgresClient.Migrate(ctx, postgres.MigrateUp); err != nil {
				panic(err)
			}
		}

		return uow.NewFactory(a.postgresClient)
	default:
		panic("unknown storage driver " + driver)
	}
}

func (a *App) mustNewAuditor() iauditrepo.IAuditorRepository {
	if !viper.GetBool("rabbitmq.enabled") {
		return audit.NopAuditor{}
	}

	a.rabbitMqClient = rabbitmq.MustNewClient()

	auditor, err := audit.NewAuditRabbitMQRepository(a.rabbitMqClient, viper.GetString("rabbitmq.queue"))
	if err != nil {
		panic(err)
	}

	return auditor
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		if err := a.grpcTransport.Run(); err != nil {
			slog.Error("gRPC server error", "error", err)
		}
	}()

	a.grpcTransport.SetServing(true)

	<-stop
	slog.Info("Shutdown signal received")

	timeout := viper.GetDuration("server.shutdown_timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.grpcTransport.SetServing(false)

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.grpcTransport.Shutdown(ctx); err != nil {
		slog.Error("gRPC server shutdown error", "error", err)
	} else {
		slog.Info("gRPC server stopped gracefully")
	}

	if a.rabbitMqClient != nil {
		if err := a.rabbitMqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if err := a.otelController.Shutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
