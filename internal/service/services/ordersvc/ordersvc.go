package ordersvc

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/corray333/backend-labs/grocery/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backend-labs/grocery/internal/dal/repositories/audit"
	"github.com/corray333/backend-labs/grocery/internal/dal/uow"
	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// OrderService is a service for placing and reading orders.
type OrderService struct {
	newUOW            uow.Factory
	auditor           iauditrepo.IAuditorRepository
	rejectEmptyOrders bool
	now               func() time.Time
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		auditor: audit.NopAuditor{},
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("ordersvc: unit of work factory is required")
	}

	return s
}

// WithUnitOfWork sets the unit of work factory for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(factory uow.Factory) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithAuditor sets the publisher notified after an order is committed.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditor(auditor iauditrepo.IAuditorRepository) option {
	return func(s *OrderService) {
		s.auditor = auditor
	}
}

// WithRejectEmptyOrders makes PlaceOrder fail on an order without lines.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRejectEmptyOrders(reject bool) option {
	return func(s *OrderService) {
		s.rejectEmptyOrders = reject
	}
}

// PlaceOrder reserves stock for every requested line and records the order.
// Either all lines are reserved and the order is stored, or nothing changes.
func (s *OrderService) PlaceOrder(ctx context.Context, cmd order.PlaceOrderCommand) (_ *order.Details, err error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.PlaceOrder")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("user.id", cmd.UserID),
		attribute.Int("order.lines", len(cmd.Lines)),
	)

	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if len(cmd.Lines) == 0 && s.rejectEmptyOrders {
		return nil, errs.Invalid("items", "Order must contain at least one item")
	}

	work := s.newUOW()

	customer, err := work.UserRepository().FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errs.ErrUserNotFound
	}

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rbErr := work.Rollback(ctx); rbErr != nil {
				slog.Error("Failed to rollback order placement", "error", rbErr)
			}
		}
	}()

	ids := cmd.ItemIDs()
	slices.Sort(ids)

	stock, err := work.ItemRepository().LockByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if unavailable := unavailableLines(cmd.Lines, stock); len(unavailable) > 0 {
		return nil, &errs.UnavailableItemsError{ItemIDs: unavailable}
	}

	lines := make([]orderitem.CreateOrderItemCommand, len(cmd.Lines))
	total := decimal.Zero
	for i, l := range cmd.Lines {
		lines[i] = orderitem.CreateOrderItemCommand{
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Price:    stock[l.ItemID].Price,
		}
		total = total.Add(lines[i].TotalPrice())
	}
	if total.GreaterThan(order.MaxTotalAmount) {
		return nil, errs.Invalid("items", "Order total exceeds 99999999.99")
	}

	created, err := work.OrderRepository().Create(ctx, order.CreateOrderCommand{
		UserID:      cmd.UserID,
		TotalAmount: total,
		Status:      order.StatusPlaced,
		OrderDate:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].OrderID = created.ID
	}

	orderItems, err := work.OrderItemRepository().BulkInsert(ctx, lines)
	if err != nil {
		return nil, err
	}

	// Repeated ids can pass the per-line check yet overdraw together; the
	// conditional decrement catches them.
	var failed []int64
	for _, l := range cmd.Lines {
		decremented, err := work.ItemRepository().DecrementQuantity(ctx, l.ItemID, l.Quantity)
		if err != nil {
			return nil, err
		}
		if decremented == nil {
			failed = append(failed, l.ItemID)
		}
	}
	if len(failed) > 0 {
		err = &errs.UnavailableItemsError{ItemIDs: failed}
		return nil, err
	}

	if err = work.Commit(ctx); err != nil {
		return nil, err
	}

	details := &order.Details{
		Order:      *created,
		OrderItems: orderItems,
	}

	slog.Info("Order placed",
		"order_id", created.ID,
		"user_id", created.UserID,
		"total_amount", created.TotalAmount.String(),
		"lines", len(orderItems))

	if pubErr := s.auditor.LogOrderPlaced(ctx, *details); pubErr != nil {
		slog.Error("Failed to publish order event", "order_id", created.ID, "error", pubErr)
	}

	return details, nil
}

// unavailableLines returns, in request order, the ids of lines whose item is
// missing or has less stock than the line asks for.
func unavailableLines(lines []order.LineRequest, stock map[int64]item.Item) []int64 {
	var unavailable []int64
	for _, l := range lines {
		it, ok := stock[l.ItemID]
		if !ok || it.Quantity < l.Quantity {
			unavailable = append(unavailable, l.ItemID)
		}
	}

	return unavailable
}

// GetOrder returns an order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Details, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.GetOrder")
	defer span.End()

	if id <= 0 {
		return nil, errs.Invalid("orderId", "Order id must be a positive integer")
	}

	work := s.newUOW()

	found, err := work.OrderRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errs.ErrOrderNotFound
	}

	orderItems, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{id},
	})
	if err != nil {
		return nil, err
	}

	return &order.Details{
		Order:      *found,
		OrderItems: orderItems,
	}, nil
}

// ListUserOrders returns one page of a user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64, page, pageSize int) (*order.Page, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.ListUserOrders")
	defer span.End()

	if userID <= 0 {
		return nil, errs.Invalid("userId", "userId is required and must be a positive integer")
	}

	paging := item.QueryItemsModel{Page: page, PageSize: pageSize}
	if err := paging.Normalize(); err != nil {
		return nil, err
	}

	work := s.newUOW()

	customer, err := work.UserRepository().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errs.ErrUserNotFound
	}

	orders, total, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		UserIds: []int64{userID},
		Limit:   paging.Limit(),
		Offset:  paging.Offset(),
	})
	if err != nil {
		return nil, err
	}

	return &order.Page{
		TotalCount:  total,
		CurrentPage: paging.Page,
		PageSize:    paging.PageSize,
		Orders:      orders,
	}, nil
}
