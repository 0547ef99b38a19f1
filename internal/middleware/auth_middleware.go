package middleware

import (
	"strings"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID     = "user_id"
	LocalUserEmail  = "user_email"
	LocalUserName   = "user_name"
	LocalPrivileges = "user_privileges"
)

// RequireAuth validates the bearer token against the user's current session and stores the identity in Locals
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.Unauthorized("missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return apperr.Unauthorized("invalid authorization format, use: Bearer <token>")
		}

		session, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			return err
		}

		c.Locals(LocalUserID, session.Actor.ID)
		c.Locals(LocalUserEmail, session.Actor.Email)
		c.Locals(LocalUserName, session.Actor.Name)
		c.Locals(LocalPrivileges, session.Privileges)

		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return RequireAnyPrivilege(requiredPrivilege)
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals(LocalPrivileges).([]string)
		if !ok {
			return apperr.Forbidden("no privileges found")
		}

		for _, userPriv := range privileges {
			for _, reqPriv := range requiredPrivileges {
				if userPriv == reqPriv {
					return c.Next()
				}
			}
		}

		return apperr.Forbidden("requires one of: " + strings.Join(requiredPrivileges, ", "))
	}
}

// ActorFrom returns the authenticated user stored by RequireAuth
func ActorFrom(c *fiber.Ctx) service.Actor {
	actor := service.Actor{ID: service.SystemActor.ID, Name: "Unknown"}
	if v, ok := c.Locals(LocalUserID).(string); ok {
		actor.ID = v
	}
	if v, ok := c.Locals(LocalUserName).(string); ok {
		actor.Name = v
	}
	if v, ok := c.Locals(LocalUserEmail).(string); ok {
		actor.Email = v
	}
	return actor
}
