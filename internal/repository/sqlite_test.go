package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deposito626-api/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProductUpsertRoundTrip(t *testing.T) {
	repo := NewSQLiteProductRepository(openTestDB(t))
	ctx := context.Background()

	p := &model.Product{
		Name:             "Agua Fresca",
		Description:      "House-made",
		Price:            4.5,
		StockStatus:      model.StockInStock,
		Category:         "drinks",
		AvailableFlavors: []string{"Lime", "Mango"},
		FlavorStock:      map[string]int{"Lime": 5, "Mango": 3},
		StockQuantity:    8,
	}
	require.NoError(t, repo.Upsert(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Agua Fresca", got.Name)
	assert.Equal(t, []string{"Lime", "Mango"}, got.AvailableFlavors)
	assert.Equal(t, map[string]int{"Lime": 5, "Mango": 3}, got.FlavorStock)
	assert.Equal(t, 8, got.StockQuantity)

	// Update through the same ID.
	got.Price = 5
	got.FlavorStock["Lime"] = 2
	got.StockQuantity = 5
	require.NoError(t, repo.Upsert(ctx, got))

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, again.Price, 1e-9)
	assert.Equal(t, 5, again.StockQuantity)
}

func TestProductListOrderedByName(t *testing.T) {
	repo := NewSQLiteProductRepository(openTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Churros", "Agua Fresca", "Tamales"} {
		require.NoError(t, repo.Upsert(ctx, &model.Product{Name: name, StockStatus: model.StockInStock}))
	}

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Agua Fresca", products[0].Name)
	assert.Equal(t, "Churros", products[1].Name)
	assert.Equal(t, "Tamales", products[2].Name)
}

func TestProductGetMissingReturnsNil(t *testing.T) {
	repo := NewSQLiteProductRepository(openTestDB(t))

	got, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductDelete(t *testing.T) {
	repo := NewSQLiteProductRepository(openTestDB(t))
	ctx := context.Background()

	p := &model.Product{Name: "Churros", StockStatus: model.StockInStock}
	require.NoError(t, repo.Upsert(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderCreateListAndStats(t *testing.T) {
	repo := NewSQLiteOrderRepository(openTestDB(t))
	ctx := context.Background()

	o1 := &model.Order{
		CustomerName: "6266271703",
		Phone:        "6266271703",
		Address:      "123 Main St",
		Items:        []model.OrderItem{{ProductID: 1, Name: "Chips", Quantity: 2, Price: 3.5, Flavor: "Lime"}},
		TotalAmount:  7,
	}
	require.NoError(t, repo.Create(ctx, o1))
	require.NotZero(t, o1.ID)
	assert.Equal(t, model.OrderPending, o1.Status)

	o2 := &model.Order{CustomerName: "5551234567", Phone: "5551234567", TotalAmount: 12, Items: []model.OrderItem{}}
	require.NoError(t, repo.Create(ctx, o2))

	require.NoError(t, repo.UpdateStatus(ctx, o2.ID, model.OrderCompleted))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// Newest first: o2 was created after o1.
	assert.Equal(t, o2.ID, orders[0].ID)
	assert.Equal(t, model.OrderCompleted, orders[0].Status)
	require.Len(t, orders[1].Items, 1)
	assert.Equal(t, "Lime", orders[1].Items[0].Flavor)
	assert.Equal(t, 2, orders[1].Items[0].Quantity)
}

func TestOrderStats(t *testing.T) {
	repo := NewSQLiteOrderRepository(openTestDB(t))
	ctx := context.Background()

	mk := func(total float64, status model.OrderStatus) {
		o := &model.Order{CustomerName: "x", Phone: "x", TotalAmount: total, Items: []model.OrderItem{}}
		require.NoError(t, repo.Create(ctx, o))
		if status != model.OrderPending {
			require.NoError(t, repo.UpdateStatus(ctx, o.ID, status))
		}
	}
	mk(10, model.OrderCompleted)
	mk(5.5, model.OrderCompleted)
	mk(99, model.OrderCancelled)
	mk(3, model.OrderPending)

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.InDelta(t, 15.5, stats.Revenue, 1e-9)
}

func TestOrderUpdateStatusMissing(t *testing.T) {
	repo := NewSQLiteOrderRepository(openTestDB(t))

	err := repo.UpdateStatus(context.Background(), 42, model.OrderCompleted)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestStoreStatusDefaultsClosed(t *testing.T) {
	repo := NewSQLiteStoreStatusRepository(openTestDB(t))
	ctx := context.Background()

	status, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsOpen)
	assert.Equal(t, "Store Closed", status.ClosingMessage)

	require.NoError(t, repo.Update(ctx, model.StoreStatus{IsOpen: true, ClosingMessage: "Back at 5"}))
	status, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsOpen)
	assert.Equal(t, "Back at 5", status.ClosingMessage)

	// Singleton: a second update overwrites, never adds a row.
	require.NoError(t, repo.Update(ctx, model.StoreStatus{IsOpen: false, ClosingMessage: "Closed for the season"}))
	status, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsOpen)
}

func TestAuditAppendAndList(t *testing.T) {
	repo := NewSQLiteAuditRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "save_product", map[string]any{"product_id": 1}))
	require.NoError(t, repo.Append(ctx, "update_store_status", nil))

	entries, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "update_store_status", entries[0].Action)
	assert.Contains(t, entries[1].Details, "product_id")
}
