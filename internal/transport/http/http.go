package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/grocery/internal/service/models/inventory"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
	createitem "github.com/corray333/backend-labs/grocery/internal/transport/http/create_item"
	deleteitem "github.com/corray333/backend-labs/grocery/internal/transport/http/delete_item"
	getitem "github.com/corray333/backend-labs/grocery/internal/transport/http/get_item"
	getorder "github.com/corray333/backend-labs/grocery/internal/transport/http/get_order"
	listitems "github.com/corray333/backend-labs/grocery/internal/transport/http/list_items"
	listuserorders "github.com/corray333/backend-labs/grocery/internal/transport/http/list_user_orders"
	manageinventory "github.com/corray333/backend-labs/grocery/internal/transport/http/manage_inventory"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/middleware/adminonly"
	placeorder "github.com/corray333/backend-labs/grocery/internal/transport/http/place_order"
	"github.com/corray333/backend-labs/grocery/internal/transport/http/response"
	updateitem "github.com/corray333/backend-labs/grocery/internal/transport/http/update_item"
	"github.com/corray333/backend-labs/grocery/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/grocery/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type catalogService interface {
	CreateItem(ctx context.Context, cmd item.CreateItemCommand) (*item.Item, error)
	UpdateItem(ctx context.Context, cmd item.UpdateItemCommand) (*item.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	GetItem(ctx context.Context, id int64) (*item.Item, error)
	ListItems(ctx context.Context, query item.QueryItemsModel) (*item.Page, error)
	ListAvailableItems(ctx context.Context, query item.QueryItemsModel) (*item.Page, error)
}

type inventoryService interface {
	ManageInventory(ctx context.Context, cmd inventory.AdjustInventoryCommand) (*item.Item, error)
}

type orderService interface {
	PlaceOrder(ctx context.Context, cmd order.PlaceOrderCommand) (*order.Details, error)
	GetOrder(ctx context.Context, id int64) (*order.Details, error)
	ListUserOrders(ctx context.Context, userID int64, page, pageSize int) (*order.Page, error)
}

type userService interface {
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	catalog   catalogService
	inventory inventoryService
	orders    orderService
	users     userService
}

func NewHTTPTransport(
	catalog catalogService,
	inventory inventoryService,
	orders orderService,
	users userService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		catalog:   catalog,
		inventory: inventory,
		orders:    orders,
		users:     users,
	}
}

// Handler returns the router, used by tests.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

func (h *HTTPTransport) Run() error {
	slog.Info("Starting HTTP server", "address", h.server.Addr)

	err := h.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h.router.Route("/api", func(r chi.Router) {
		r.Route("/admin/grocery-items", func(r chi.Router) {
			r.Use(adminonly.New(h.users))

			r.Post("/", h.createItem)
			r.Get("/", h.listItems)
			r.Post("/manage-inventory", h.manageInventory)
			r.Get("/{itemId}", h.getItem)
			r.Put("/{itemId}", h.updateItem)
			r.Delete("/{itemId}", h.deleteItem)
		})

		r.Get("/grocery-items/available", h.listAvailableItems)
		r.Post("/grocery-items/order", h.placeOrder)
		r.Get("/orders/{orderId}", h.getOrder)
		r.Get("/users/{userId}/orders", h.listUserOrders)
	})
}

func (h *HTTPTransport) createItem(w http.ResponseWriter, r *http.Request) {
	createitem.CreateItem(w, r, h.catalog)
}

func (h *HTTPTransport) listItems(w http.ResponseWriter, r *http.Request) {
	listitems.ListItems(w, r, h.catalog)
}

func (h *HTTPTransport) listAvailableItems(w http.ResponseWriter, r *http.Request) {
	listitems.ListAvailableItems(w, r, h.catalog)
}

func (h *HTTPTransport) getItem(w http.ResponseWriter, r *http.Request) {
	getitem.GetItem(w, r, h.catalog)
}

func (h *HTTPTransport) updateItem(w http.ResponseWriter, r *http.Request) {
	updateitem.UpdateItem(w, r, h.catalog)
}

func (h *HTTPTransport) deleteItem(w http.ResponseWriter, r *http.Request) {
	deleteitem.DeleteItem(w, r, h.catalog)
}

func (h *HTTPTransport) manageInventory(w http.ResponseWriter, r *http.Request) {
	manageinventory.ManageInventory(w, r, h.inventory)
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) listUserOrders(w http.ResponseWriter, r *http.Request) {
	listuserorders.ListUserOrders(w, r, h.orders)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(trace.NewTraceMiddleware("grocery-svc"))
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(middleware.Recoverer)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:              "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:           router,
		ReadHeaderTimeout: viper.GetDuration("server.http.read_header_timeout"),
		WriteTimeout:      viper.GetDuration("server.http.write_timeout"),
		IdleTimeout:       viper.GetDuration("server.http.idle_timeout"),
	}
}
