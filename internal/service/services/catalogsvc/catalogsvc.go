package catalogsvc

import (
	"context"
	"log/slog"

	"github.com/corray333/backend-labs/grocery/internal/dal/uow"
	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
)

// CatalogService is a service for managing catalog items.
type CatalogService struct {
	newUOW            uow.Factory
	emptyPageNotFound bool
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{
		emptyPageNotFound: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("catalogsvc: unit of work factory is required")
	}

	return s
}

// WithUnitOfWork sets the unit of work factory for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(factory uow.Factory) option {
	return func(s *CatalogService) {
		s.newUOW = factory
	}
}

// WithEmptyPageNotFound controls whether an empty listing page is reported
// as not found.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEmptyPageNotFound(enabled bool) option {
	return func(s *CatalogService) {
		s.emptyPageNotFound = enabled
	}
}

// CreateItem adds a new item to the catalog.
func (s *CatalogService) CreateItem(ctx context.Context, cmd item.CreateItemCommand) (*item.Item, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.CreateItem")
	defer span.End()

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	repo := s.newUOW().ItemRepository()

	existing, err := repo.FindByName(ctx, cmd.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrDuplicateName
	}

	created, err := repo.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}

	slog.Info("Grocery item created", "item_id", created.ID, "name", created.Name)

	return created, nil
}

// UpdateItem applies a partial update to an item.
func (s *CatalogService) UpdateItem(ctx context.Context, cmd item.UpdateItemCommand) (*item.Item, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.UpdateItem")
	defer span.End()

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	repo := s.newUOW().ItemRepository()

	current, err := repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errs.ErrItemNotFound
	}

	if cmd.Name != nil && *cmd.Name != current.Name {
		clash, err := repo.FindByName(ctx, *cmd.Name)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, errs.ErrDuplicateName
		}
	}

	if cmd.IsEmpty() {
		return current, nil
	}

	updated, err := repo.Update(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errs.ErrItemNotFound
	}

	return updated, nil
}

// DeleteItem removes an item from the catalog.
func (s *CatalogService) DeleteItem(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.DeleteItem")
	defer span.End()

	if id <= 0 {
		return errs.Invalid("itemId", "Item id must be a positive integer")
	}

	deleted, err := s.newUOW().ItemRepository().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.ErrItemNotFound
	}

	slog.Info("Grocery item deleted", "item_id", id)

	return nil
}

// GetItem returns a single item.
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*item.Item, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.GetItem")
	defer span.End()

	if id <= 0 {
		return nil, errs.Invalid("itemId", "Item id must be a positive integer")
	}

	found, err := s.newUOW().ItemRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errs.ErrItemNotFound
	}

	return found, nil
}

// ListItems returns one page of the whole catalog.
func (s *CatalogService) ListItems(ctx context.Context, query item.QueryItemsModel) (*item.Page, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.ListItems")
	defer span.End()

	query.InStockOnly = false

	return s.list(ctx, query, errs.ErrNoItemsFound)
}

// ListAvailableItems returns one page of the items that are in stock.
func (s *CatalogService) ListAvailableItems(ctx context.Context, query item.QueryItemsModel) (*item.Page, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.ListAvailableItems")
	defer span.End()

	query.InStockOnly = true

	return s.list(ctx, query, errs.ErrNoAvailableItemsFound)
}

func (s *CatalogService) list(ctx context.Context, query item.QueryItemsModel, errEmpty error) (*item.Page, error) {
	if err := query.Normalize(); err != nil {
		return nil, err
	}

	items, total, err := s.newUOW().ItemRepository().Query(ctx, &query)
	if err != nil {
		return nil, errors.WithMessage(err, "list grocery items")
	}

	if len(items) == 0 && s.emptyPageNotFound {
		return nil, errEmpty
	}

	return &item.Page{
		TotalCount:  total,
		CurrentPage: query.Page,
		PageSize:    query.PageSize,
		Items:       items,
	}, nil
}
