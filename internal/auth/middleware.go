package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/web/session"
)

const identityLocalKey = "identity"

// CurrentIdentity returns the identity resolved by RequireCapability or
// ResolveIdentity for the current request, and whether one is present.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityLocalKey).(Identity)
	return id, ok
}

// ResolveIdentity is a Fiber middleware that resolves the session into an
// Identity and stores it in the request locals. Requests without a valid
// session pass through without an identity; route-level middleware decides
// whether that is acceptable.
func ResolveIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session")
		if sessionID == "" {
			return c.Next()
		}

		sessData := new(session.Data)
		if err := sessData.Read(sessionID); err != nil || sessData.Staff.ID == 0 {
			return c.Next()
		}

		c.Locals(identityLocalKey, FromStaff(&sessData.Staff))
		c.Locals("CurrentStaff", sessData.Staff)

		return c.Next()
	}
}

// RequireCapability creates Fiber middleware that requires the session
// identity to hold a specific capability. The privileged role passes without
// a matrix lookup; everyone else is checked against the request snapshot.
func RequireCapability(matrix *Matrix, capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		granted, err := matrix.IsGranted(identity.Role, capability)
		if err != nil {
			log.Error().Err(err).Uint64("staff_id", identity.ID).Str("capability", capability).
				Msg("Failed to check capability")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !granted {
			log.Warn().Uint64("staff_id", identity.ID).Str("capability", capability).
				Msg("Identity lacks required capability")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// AddGrantsToLocals is a Fiber middleware that adds the identity's grant
// snapshot to fiber.Locals for conditional rendering in templates.
func AddGrantsToLocals(matrix *Matrix) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return c.Next()
		}

		grants, err := matrix.Snapshot(identity.Role)
		if err != nil {
			log.Error().Err(err).Uint64("staff_id", identity.ID).
				Msg("Failed to snapshot permissions")

			return c.Next()
		}

		c.Locals("grants", grants)
		c.Locals("hasCapability", func(capability string) bool {
			return grants[capability]
		})

		return c.Next()
	}
}
