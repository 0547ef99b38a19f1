package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go-inventory-tracker/internal/config"
	"go-inventory-tracker/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:           "test",
		StoreDriver:   config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "bootstrap.db"),
		JWTSecret:     "bootstrap-test-secret-with-enough-len",
		JWTTTL:        time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-password",
	}
}

func TestOpenSeedsAdminAndIsRepeatable(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	rt, err := Open(ctx, cfg, service.NopNotifier, zerolog.Nop())
	require.NoError(t, err)
	login, err := rt.Auth.Login(ctx, service.LoginRequest{Email: cfg.AdminEmail, Password: cfg.AdminPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	require.NoError(t, rt.Close(ctx))

	// a second start must not duplicate seeded rows
	rt, err = Open(ctx, cfg, service.NopNotifier, zerolog.Nop())
	require.NoError(t, err)
	defer rt.Close(ctx)

	roles, err := rt.Roles.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}

func TestOpenWiresInventoryStore(t *testing.T) {
	ctx := context.Background()
	rt, err := Open(ctx, sqliteConfig(t), service.NopNotifier, zerolog.Nop())
	require.NoError(t, err)
	defer rt.Close(ctx)

	qty := int64(3)
	p, err := rt.Inventory.AddProduct(ctx, service.AddProductRequest{
		Brand: "Acme", Barcode: 7, Category: "bearing", Stocks: &qty,
	}, service.SystemActor)
	require.NoError(t, err)

	dash, err := rt.Dashboard.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.TotalProducts)
	assert.Equal(t, p.ID, dash.RecentProducts[0].ID)
}
