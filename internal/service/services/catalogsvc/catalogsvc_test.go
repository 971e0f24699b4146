package catalogsvc

import (
	"context"
	"math"
	"testing"

	"github.com/corray333/backend-labs/grocery/internal/dal/memory"
	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, opts ...option) *CatalogService {
	t.Helper()

	opts = append([]option{WithUnitOfWork(memory.NewStore().Factory())}, opts...)

	return MustNewCatalogService(opts...)
}

func mustCreate(t *testing.T, svc *CatalogService, name, price string, quantity int64) *item.Item {
	t.Helper()

	created, err := svc.CreateItem(context.Background(), item.CreateItemCommand{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	})
	require.NoError(t, err)

	return created
}

func TestCreateItem(t *testing.T) {
	svc := newService(t)

	created := mustCreate(t, svc, "  Oat milk ", "2.49", 12)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Oat milk", created.Name)
	assert.Equal(t, "2.49", created.Price.StringFixed(2))
	assert.Equal(t, int64(12), created.Quantity)

	_, err := svc.CreateItem(context.Background(), item.CreateItemCommand{
		Name: "Oat milk", Price: decimal.NewFromInt(3), Quantity: 1,
	})
	assert.ErrorIs(t, err, errs.ErrDuplicateName)
}

func TestCreateItem_Validation(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name   string
		cmd    item.CreateItemCommand
		reason string
	}{
		{
			name:   "blank name",
			cmd:    item.CreateItemCommand{Name: "   ", Price: decimal.NewFromInt(1)},
			reason: item.ReasonName,
		},
		{
			name:   "zero price",
			cmd:    item.CreateItemCommand{Name: "Tea", Price: decimal.Zero},
			reason: item.ReasonPrice,
		},
		{
			name:   "negative price",
			cmd:    item.CreateItemCommand{Name: "Tea", Price: decimal.NewFromInt(-1)},
			reason: item.ReasonPrice,
		},
		{
			name:   "sub-cent price",
			cmd:    item.CreateItemCommand{Name: "Tea", Price: decimal.RequireFromString("0.001")},
			reason: item.ReasonPriceRange,
		},
		{
			name:   "price above the maximum",
			cmd:    item.CreateItemCommand{Name: "Tea", Price: decimal.RequireFromString("100000000")},
			reason: item.ReasonPriceRange,
		},
		{
			name:   "negative quantity",
			cmd:    item.CreateItemCommand{Name: "Tea", Price: decimal.NewFromInt(1), Quantity: -1},
			reason: item.ReasonQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(context.Background(), tt.cmd)

			var validation *errs.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.reason, validation.Reason)
		})
	}
}

func TestUpdateItem(t *testing.T) {
	svc := newService(t)
	tea := mustCreate(t, svc, "Tea", "4.00", 3)
	mustCreate(t, svc, "Coffee", "9.00", 3)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		quantity := int64(30)
		updated, err := svc.UpdateItem(context.Background(), item.UpdateItemCommand{ID: tea.ID, Quantity: &quantity})
		require.NoError(t, err)
		assert.Equal(t, int64(30), updated.Quantity)
		assert.Equal(t, "Tea", updated.Name)
		assert.True(t, tea.Price.Equal(updated.Price))
	})

	t.Run("same name is not a clash", func(t *testing.T) {
		name := "Tea"
		price := decimal.RequireFromString("4.50")
		updated, err := svc.UpdateItem(context.Background(), item.UpdateItemCommand{ID: tea.ID, Name: &name, Price: &price})
		require.NoError(t, err)
		assert.True(t, price.Equal(updated.Price))
	})

	t.Run("name taken", func(t *testing.T) {
		name := "Coffee"
		_, err := svc.UpdateItem(context.Background(), item.UpdateItemCommand{ID: tea.ID, Name: &name})
		assert.ErrorIs(t, err, errs.ErrDuplicateName)
	})

	t.Run("empty update returns current item", func(t *testing.T) {
		current, err := svc.UpdateItem(context.Background(), item.UpdateItemCommand{ID: tea.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(30), current.Quantity)
	})

	t.Run("missing item", func(t *testing.T) {
		quantity := int64(1)
		_, err := svc.UpdateItem(context.Background(), item.UpdateItemCommand{ID: 999, Quantity: &quantity})
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("invalid field", func(t *testing.T) {
		price := decimal.Zero
		_, err := svc.UpdateItem(context.Background(), item.UpdateItemCommand{ID: tea.ID, Price: &price})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestDeleteAndGetItem(t *testing.T) {
	svc := newService(t)
	jam := mustCreate(t, svc, "Jam", "3", 2)

	found, err := svc.GetItem(context.Background(), jam.ID)
	require.NoError(t, err)
	assert.Equal(t, jam.Name, found.Name)

	require.NoError(t, svc.DeleteItem(context.Background(), jam.ID))

	_, err = svc.GetItem(context.Background(), jam.ID)
	assert.ErrorIs(t, err, errs.ErrItemNotFound)

	assert.ErrorIs(t, svc.DeleteItem(context.Background(), jam.ID), errs.ErrItemNotFound)
	assert.ErrorIs(t, svc.DeleteItem(context.Background(), 0), errs.ErrValidation)
}

func TestListItems(t *testing.T) {
	svc := newService(t)
	mustCreate(t, svc, "Carrot", "0.50", 0)
	mustCreate(t, svc, "Apple", "1.20", 4)
	mustCreate(t, svc, "Beet", "0.80", 9)

	page, err := svc.ListItems(context.Background(), item.QueryItemsModel{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, item.DefaultPage, page.CurrentPage)
	assert.Equal(t, item.DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, 3)

	page, err = svc.ListItems(context.Background(), item.QueryItemsModel{
		Page: 1, PageSize: 2, SortBy: item.SortByPrice, SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Carrot", page.Items[0].Name)
	assert.Equal(t, "Beet", page.Items[1].Name)

	_, err = svc.ListItems(context.Background(), item.QueryItemsModel{SortBy: "color"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.ListItems(context.Background(), item.QueryItemsModel{Page: 5})
	assert.ErrorIs(t, err, errs.ErrNoItemsFound)

	_, err = svc.ListItems(context.Background(), item.QueryItemsModel{Page: math.MaxInt/10 + 2, PageSize: 10})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestListAvailableItems(t *testing.T) {
	svc := newService(t)
	mustCreate(t, svc, "Carrot", "0.50", 0)
	mustCreate(t, svc, "Apple", "1.20", 4)

	page, err := svc.ListAvailableItems(context.Background(), item.QueryItemsModel{SortBy: item.SortByName})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Apple", page.Items[0].Name)

	// InStockOnly cannot be switched off by the caller.
	page, err = svc.ListAvailableItems(context.Background(), item.QueryItemsModel{InStockOnly: false})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestListItems_EmptyPage(t *testing.T) {
	t.Run("not found by default", func(t *testing.T) {
		svc := newService(t)

		_, err := svc.ListItems(context.Background(), item.QueryItemsModel{})
		assert.ErrorIs(t, err, errs.ErrNoItemsFound)

		_, err = svc.ListAvailableItems(context.Background(), item.QueryItemsModel{})
		assert.ErrorIs(t, err, errs.ErrNoAvailableItemsFound)
	})

	t.Run("empty page when disabled", func(t *testing.T) {
		svc := newService(t, WithEmptyPageNotFound(false))

		page, err := svc.ListItems(context.Background(), item.QueryItemsModel{})
		require.NoError(t, err)
		assert.Zero(t, page.TotalCount)
		assert.Empty(t, page.Items)
	})
}
