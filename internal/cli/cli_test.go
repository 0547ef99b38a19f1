package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"go-inventory-tracker/internal/bootstrap"
	"go-inventory-tracker/internal/config"
	"go-inventory-tracker/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:           "test",
		StoreDriver:   config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "admin.db"),
		JWTSecret:     "cli-test-secret-with-enough-length-xx",
		JWTTTL:        time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-password",
	}
}

func opener(cfg *config.Config) Opener {
	return func(ctx context.Context) (*bootstrap.Runtime, error) {
		return bootstrap.Open(ctx, cfg, service.NopNotifier, zerolog.Nop())
	}
}

// seed adds products through a short-lived runtime, the way the API would
func seed(t *testing.T, cfg *config.Config, stocks ...int64) {
	t.Helper()
	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg, service.NopNotifier, zerolog.Nop())
	require.NoError(t, err)
	defer rt.Close(ctx)

	for i, n := range stocks {
		qty := n
		_, err := rt.Inventory.AddProduct(ctx, service.AddProductRequest{
			Brand:    "Brand",
			Barcode:  int64(i + 1),
			Category: "bearing",
			Stocks:   &qty,
		}, service.SystemActor)
		require.NoError(t, err)
	}
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand(opener(cfg))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, testConfig(t), "stats", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestPurgeRequiresConfirmation(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg, 5)

	_, err := run(t, cfg, "purge-transactions")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err := run(t, cfg, "stats", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalTransactions": 1`)
}

func TestPurgeAllTransactions(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg, 5, 7)

	out, err := run(t, cfg, "purge-transactions", "--yes", "--format", "json")
	require.NoError(t, err)

	var result PurgeResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, int64(2), result.Deleted)

	out, err = run(t, cfg, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Transactions: 0")
	assert.Contains(t, out, "Total stock:  12")
}

func TestPurgeRejectsBadID(t *testing.T) {
	_, err := run(t, testConfig(t), "purge-transactions", "--id", "nope", "--yes")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPurgeUnknownIDFails(t *testing.T) {
	_, err := run(t, testConfig(t), "purge-transactions", "--id", "5b1f7bb8-9b1c-4d55-8a34-0f0e5a7c2a11", "--yes")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestArchiveAll(t *testing.T) {
	cfg := testConfig(t)
	seed(t, cfg, 1, 2, 3)

	_, err := run(t, cfg, "archive-all")
	require.Error(t, err)

	out, err := run(t, cfg, "archive-all", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Archived 3 product(s).")

	out, err = run(t, cfg, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Products:     0")
}

func TestResetPassword(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "reset-password", "--email", "admin@example.com", "--password", "brand-new-pass")
	require.NoError(t, err)
	assert.Contains(t, out, "has been reset")

	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg, service.NopNotifier, zerolog.Nop())
	require.NoError(t, err)
	defer rt.Close(ctx)

	_, err = rt.Auth.Login(ctx, service.LoginRequest{Email: "admin@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	_, err = run(t, cfg, "reset-password", "--email", "admin@example.com", "--password", "short")
	require.Error(t, err)
}

func TestResetPasswordRequiresFlags(t *testing.T) {
	_, err := run(t, testConfig(t), "reset-password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
