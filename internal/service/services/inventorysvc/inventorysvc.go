package inventorysvc

import (
	"context"
	"log/slog"
	"math"

	"github.com/corray333/backend-labs/grocery/internal/dal/uow"
	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/inventory"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// InventoryService is a service for adjusting stock levels.
type InventoryService struct {
	newUOW uow.Factory
}

// option is a function that configures the InventoryService.
type option func(*InventoryService)

// MustNewInventoryService creates a new InventoryService.
func MustNewInventoryService(opts ...option) *InventoryService {
	s := &InventoryService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("inventorysvc: unit of work factory is required")
	}

	return s
}

// WithUnitOfWork sets the unit of work factory for the InventoryService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(factory uow.Factory) option {
	return func(s *InventoryService) {
		s.newUOW = factory
	}
}

// ManageInventory applies one stock adjustment under the item row lock and
// returns the updated item.
func (s *InventoryService) ManageInventory(
	ctx context.Context,
	cmd inventory.AdjustInventoryCommand,
) (_ *item.Item, err error) {
	ctx, span := otel.Tracer("service").Start(ctx, "InventoryService.ManageInventory")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("item.id", cmd.ItemID),
		attribute.String("inventory.operation", cmd.Operation.String()),
	)

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rbErr := work.Rollback(ctx); rbErr != nil {
				slog.Error("Failed to rollback inventory adjustment", "error", rbErr)
			}
		}
	}()

	locked, err := work.ItemRepository().LockByIDs(ctx, []int64{cmd.ItemID})
	if err != nil {
		return nil, err
	}
	current, ok := locked[cmd.ItemID]
	if !ok {
		return nil, errs.ErrItemNotFound
	}

	var next int64
	switch cmd.Operation {
	case inventory.OperationIncrease:
		if cmd.Quantity > math.MaxInt64-current.Quantity {
			return nil, errs.Invalid("quantity", "Quantity would exceed the maximum stock level")
		}
		next = current.Quantity + cmd.Quantity
	case inventory.OperationDecrease:
		if cmd.Quantity > current.Quantity {
			return nil, errs.ErrInsufficientStock
		}
		next = current.Quantity - cmd.Quantity
	case inventory.OperationSetZero:
		next = 0
	default:
		return nil, errs.ErrUnknownOperation
	}

	updated, err := work.ItemRepository().SetQuantity(ctx, cmd.ItemID, next)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.Errorf("grocery item %d vanished under lock", cmd.ItemID)
	}

	if err = work.Commit(ctx); err != nil {
		return nil, err
	}

	slog.Info("Inventory adjusted",
		"item_id", cmd.ItemID,
		"operation", cmd.Operation.String(),
		"quantity", updated.Quantity)

	return updated, nil
}
