package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kindStatus is a reduced error handler: the real one lives in the handler package
func kindStatus(c *fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindUnauthorized:
		return c.SendStatus(fiber.StatusUnauthorized)
	case apperr.KindForbidden:
		return c.SendStatus(fiber.StatusForbidden)
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}

func withPrivileges(privs ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalUserID, "u-1")
		c.Locals(LocalUserName, "Dana")
		c.Locals(LocalUserEmail, "dana@example.com")
		c.Locals(LocalPrivileges, privs)
		return c.Next()
	}
}

func status(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAnyPrivilege(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: kindStatus})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }

	app.Get("/one", withPrivileges("product:view"), RequirePrivilege("product:view"), ok)
	app.Get("/any", withPrivileges("product:view"), RequireAnyPrivilege("report:export", "product:view"), ok)
	app.Get("/none", withPrivileges("product:view"), RequirePrivilege("transaction:purge"), ok)
	app.Get("/anon", RequirePrivilege("product:view"), ok)

	assert.Equal(t, fiber.StatusNoContent, status(t, app, "/one"))
	assert.Equal(t, fiber.StatusNoContent, status(t, app, "/any"))
	assert.Equal(t, fiber.StatusForbidden, status(t, app, "/none"))
	assert.Equal(t, fiber.StatusForbidden, status(t, app, "/anon"))
}

func TestActorFrom(t *testing.T) {
	app := fiber.New()
	var got, anon service.Actor
	app.Get("/auth", withPrivileges(), func(c *fiber.Ctx) error {
		got = ActorFrom(c)
		return nil
	})
	app.Get("/anon", func(c *fiber.Ctx) error {
		anon = ActorFrom(c)
		return nil
	})

	status(t, app, "/auth")
	status(t, app, "/anon")
	assert.Equal(t, service.Actor{ID: "u-1", Name: "Dana", Email: "dana@example.com"}, got)
	assert.Equal(t, service.SystemActor.ID, anon.ID)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: kindStatus})
	// the token is never checked for these requests, so no AuthService is needed
	app.Get("/", RequireAuth(nil), func(c *fiber.Ctx) error { return nil })

	for _, header := range []string{"", "Token abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestTimeoutSetsDeadline(t *testing.T) {
	app := fiber.New()
	var deadline bool
	app.Get("/", Timeout(time.Minute), func(c *fiber.Ctx) error {
		_, deadline = c.UserContext().Deadline()
		return c.UserContext().Err()
	})

	assert.Equal(t, fiber.StatusOK, status(t, app, "/"))
	assert.True(t, deadline)
}

func TestRequestLoggerRendersErrors(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	app := fiber.New(fiber.Config{ErrorHandler: kindStatus})
	app.Use(RequestLogger(log))
	app.Get("/", func(c *fiber.Ctx) error { return apperr.Forbidden("nope") })

	assert.Equal(t, fiber.StatusForbidden, status(t, app, "/"))
	assert.Contains(t, buf.String(), `"status":403`)
	assert.Contains(t, buf.String(), `"user_id":"anonymous"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
