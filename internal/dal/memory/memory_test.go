package memory

import (
	"context"
	"testing"

	"github.com/corray333/backend-labs/grocery/internal/service/errs"
	"github.com/corray333/backend-labs/grocery/internal/service/models/item"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/grocery/internal/service/models/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createItem(t *testing.T, s *Store, name string, price string, quantity int64) item.Item {
	t.Helper()

	created, err := s.NewUnitOfWork().ItemRepository().Create(context.Background(), item.CreateItemCommand{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	})
	require.NoError(t, err)

	return *created
}

func TestItemRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.NewUnitOfWork().ItemRepository()

	apple := createItem(t, s, "Apple", "1.50", 10)
	assert.Equal(t, int64(1), apple.ID)
	assert.False(t, apple.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, apple.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, apple, *found)

	byName, err := repo.FindByName(ctx, "Apple")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, apple.ID, byName.ID)

	missing, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.Create(ctx, item.CreateItemCommand{Name: "Apple", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, errs.ErrDuplicateName)
}

func TestItemRepository_Query(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	createItem(t, s, "Banana", "3", 0)
	createItem(t, s, "Apple", "2", 5)
	createItem(t, s, "Cherry", "1", 7)

	repo := s.NewUnitOfWork().ItemRepository()

	items, total, err := repo.Query(ctx, &item.QueryItemsModel{
		Page: 1, PageSize: 2, SortBy: item.SortByName, SortOrder: item.SortAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Apple", items[0].Name)
	assert.Equal(t, "Banana", items[1].Name)

	items, total, err = repo.Query(ctx, &item.QueryItemsModel{
		InStockOnly: true, Page: 1, PageSize: 10, SortBy: item.SortByPrice, SortOrder: item.SortDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Apple", items[0].Name)
	assert.Equal(t, "Cherry", items[1].Name)

	items, total, err = repo.Query(ctx, &item.QueryItemsModel{Page: 3, PageSize: 2, SortBy: item.SortByID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, items)
}

func TestItemRepository_DecrementQuantity(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	milk := createItem(t, s, "Milk", "1", 3)
	repo := s.NewUnitOfWork().ItemRepository()

	updated, err := repo.DecrementQuantity(ctx, milk.ID, 3)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, int64(0), updated.Quantity)

	updated, err = repo.DecrementQuantity(ctx, milk.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, updated)

	updated, err = repo.DecrementQuantity(ctx, 99, 1)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestItemRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	bread := createItem(t, s, "Bread", "2", 1)
	createItem(t, s, "Butter", "4", 1)
	repo := s.NewUnitOfWork().ItemRepository()

	name := "Butter"
	_, err := repo.Update(ctx, item.UpdateItemCommand{ID: bread.ID, Name: &name})
	assert.ErrorIs(t, err, errs.ErrDuplicateName)

	price := decimal.RequireFromString("2.25")
	updated, err := repo.Update(ctx, item.UpdateItemCommand{ID: bread.ID, Price: &price})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, price.Equal(updated.Price))
	assert.Equal(t, "Bread", updated.Name)

	deleted, err := repo.Delete(ctx, bread.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, bread.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore(user.User{ID: 1, Username: "alice", Role: user.RoleUser})
	eggs := createItem(t, s, "Eggs", "3", 12)

	work := s.NewUnitOfWork()
	require.NoError(t, work.Begin(ctx))

	_, err := work.ItemRepository().DecrementQuantity(ctx, eggs.ID, 5)
	require.NoError(t, err)
	created, err := work.OrderRepository().Create(ctx, order.CreateOrderCommand{
		UserID: 1, TotalAmount: decimal.NewFromInt(15), Status: order.StatusPlaced,
	})
	require.NoError(t, err)
	_, err = work.OrderItemRepository().BulkInsert(ctx, []orderitem.CreateOrderItemCommand{
		{OrderID: created.ID, ItemID: eggs.ID, Quantity: 5, Price: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)

	require.NoError(t, work.Rollback(ctx))

	reader := s.NewUnitOfWork()
	stored, err := reader.ItemRepository().FindByID(ctx, eggs.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stored.Quantity)

	orders, total, err := reader.OrderRepository().Query(ctx, &order.QueryOrdersModel{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)

	lines, err := reader.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestUnitOfWork_CommitPublishesWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	eggs := createItem(t, s, "Eggs", "3", 12)

	work := s.NewUnitOfWork()
	require.NoError(t, work.Begin(ctx))
	_, err := work.ItemRepository().SetQuantity(ctx, eggs.ID, 0)
	require.NoError(t, err)
	require.NoError(t, work.Commit(ctx))

	stored, err := s.NewUnitOfWork().ItemRepository().FindByID(ctx, eggs.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Quantity)

	// Finished units of work fall back to the shared state.
	_, err = work.ItemRepository().SetQuantity(ctx, eggs.ID, 4)
	require.NoError(t, err)
	stored, err = s.NewUnitOfWork().ItemRepository().FindByID(ctx, eggs.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stored.Quantity)
}

func TestUnitOfWork_BeginTwice(t *testing.T) {
	ctx := context.Background()
	work := NewStore().NewUnitOfWork()

	require.NoError(t, work.Begin(ctx))
	assert.Error(t, work.Begin(ctx))
	require.NoError(t, work.Rollback(ctx))
}

func TestOrderRepository_QueryNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.NewUnitOfWork().OrderRepository()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, order.CreateOrderCommand{UserID: 7, Status: order.StatusPlaced})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, order.CreateOrderCommand{UserID: 8, Status: order.StatusPlaced})
	require.NoError(t, err)

	orders, total, err := repo.Query(ctx, &order.QueryOrdersModel{UserIds: []int64{7}, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Greater(t, orders[0].ID, orders[1].ID)
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	s := NewStore(user.User{ID: 1, Username: "root", Role: user.RoleAdmin})
	repo := s.NewUnitOfWork().UserRepository()

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.IsAdmin())

	missing, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestView_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().NewUnitOfWork().ItemRepository().FindByID(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPaginate(t *testing.T) {
	records := []int{1, 2, 3}

	assert.Equal(t, []int{2, 3}, paginate(records, 1, 5))
	assert.Equal(t, []int{1}, paginate(records, 0, 1))
	assert.Empty(t, paginate(records, 3, 1))
	assert.Empty(t, paginate(records, -10, 1))
}
