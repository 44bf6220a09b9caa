//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/application/orderimport"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/storefront/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run with: go test -tags integration ./internal/infrastructure/persistence/...
// Requires a local Docker daemon.

const (
	pgDatabase = "storefront_test"
	pgUser     = "postgres"
	pgPassword = "postgres"
)

// startPostgres runs a throwaway Postgres container with the embedded migrations applied
func startPostgres(t *testing.T) (*tcpostgres.PostgresContainer, *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(pgDatabase),
		tcpostgres.WithUsername(pgUser),
		tcpostgres.WithPassword(pgPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrations.FS, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return container, db
}

func TestPostgres_NewDatabase(t *testing.T) {
	container, _ := startPostgres(t)
	ctx := context.Background()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := NewDatabase(&config.DatabaseConfig{
		Host:         host,
		Port:         port.Int(),
		User:         pgUser,
		Password:     pgPassword,
		DBName:       pgDatabase,
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.Ping(ctx))
	assert.Equal(t, 5, db.Stats().MaxOpenConnections)
}

func TestPostgres_OrderImport(t *testing.T) {
	_, db := startPostgres(t)
	f := seedImportFixture(t, db)

	got, err := f.importJSON(t, customer, `{
		"email": "buyer@example.com",
		"ship_address": {"firstname": "Ada", "lastname": "Lovelace", "address1": "1 Main St", "city": "Boston",
			"zipcode": "02110", "country": {"iso": "US"}, "state": {"abbr": "MA"}},
		"line_items": {"0": {"sku": "SHIRT-S", "quantity": 2}},
		"shipments": [{"tracking": "1Z999", "shipping_method": "UPS Ground", "cost": "5.00", "inventory_units": [{"sku": "SHIRT-S"}]}],
		"payments": [{"amount": "45.00", "payment_method": "Check"}],
		"completed_at": "2024-05-01T10:00:00Z"
	}`)
	require.NoError(t, err)

	stored, err := NewGormOrderRepository(db).FindByID(context.Background(), got.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ShipAddress)
	require.NotNil(t, stored.ShipAddress.StateID)
	assert.Equal(t, f.ma.ID, *stored.ShipAddress.StateID)
	assert.Len(t, stored.LineItems, 1)
	assert.Len(t, stored.Shipments, 1)
	assert.Len(t, stored.Payments, 1)
	assert.True(t, stored.ItemTotal.Equal(decimal.NewFromInt(40)), stored.ItemTotal.String())
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(45)), stored.Total.String())
}

func TestPostgres_OrderImportRollsBack(t *testing.T) {
	_, db := startPostgres(t)
	f := seedImportFixture(t, db)

	_, err := f.importJSON(t, customer, `{
		"line_items": {"0": {"sku": "SHIRT-S", "quantity": 1}},
		"payments": [{"amount": "20", "payment_method": "Barter"}]
	}`)
	require.Error(t, err)
	assert.True(t, orderimport.HasKind(err, orderimport.KindPaymentImportFailed), err.Error())
	f.assertEmpty(t)
	assert.Zero(t, f.count(t, &models.OrderModel{}))
}
