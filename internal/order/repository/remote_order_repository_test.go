package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabores/internal/domain"
	"sabores/internal/infrastructure/database"
	"sabores/internal/testutil"
)

func TestRemoteOrderRepository_NotConfigured(t *testing.T) {
	repo := NewRemoteOrderRepository(nil, database.DriverPostgres)

	err := repo.Save(context.Background(), testutil.NewOrder(1))
	assert.ErrorIs(t, err, ErrRemoteNotConfigured)

	_, err = repo.List(context.Background())
	assert.ErrorIs(t, err, ErrRemoteNotConfigured)
	assert.Equal(t, domain.TierRemote, repo.Tier())
}

func TestRemoteOrderRepository_SaveAndList(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	testutil.SetupTestTables(t, db)
	repo := NewRemoteOrderRepository(db, database.DriverSQLite)
	ctx := context.Background()

	older := testutil.NewOrder(1)
	newer := testutil.NewOrder(2)
	newer.ProductPrice = nil
	newer.Notes = "sem lactose"
	newer.DeliveryDate = "2025-02-14"
	newer.PaymentMethod = domain.PaymentCard

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Nil(t, orders[0].ProductPrice)
	assert.Equal(t, "sem lactose", orders[0].Notes)
	assert.Equal(t, "2025-02-14", orders[0].DeliveryDate)
	assert.Equal(t, domain.PaymentCard, orders[0].PaymentMethod)
	assert.Equal(t, domain.OrderStatusPending, orders[0].Status)
	assert.True(t, newer.CreatedAt.Equal(orders[0].CreatedAt))

	assert.Equal(t, older.ID, orders[1].ID)
	require.NotNil(t, orders[1].ProductPrice)
	assert.Equal(t, 35.9, *orders[1].ProductPrice)
}

func TestRemoteOrderRepository_ListEmpty(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	testutil.SetupTestTables(t, db)
	repo := NewRemoteOrderRepository(db, database.DriverSQLite)

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRemoteOrderRepository_DuplicateIDFails(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	testutil.SetupTestTables(t, db)
	repo := NewRemoteOrderRepository(db, database.DriverSQLite)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewOrder(1)))
	assert.Error(t, repo.Save(ctx, testutil.NewOrder(1)))
}

func TestRemoteOrderRepository_MissingTableFails(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewRemoteOrderRepository(db, database.DriverSQLite)

	assert.Error(t, repo.Save(context.Background(), testutil.NewOrder(1)))
	_, err := repo.List(context.Background())
	assert.Error(t, err)
}

func TestRemoteOrderRepository_MySQL(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewRemoteOrderRepository(db, database.DriverMySQL)
	ctx := context.Background()

	order := testutil.NewOrder(7)
	order.CreatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Save(ctx, order))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, orders)
	assert.Equal(t, order.ID, orders[0].ID)
}
