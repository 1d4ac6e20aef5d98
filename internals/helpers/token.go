// file: internals/helpers/token.go
package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserUUID mengambil user_id yang sudah disimpan AuthMiddleware di locals.
func GetUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: token tidak valid")
	}

	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "user_id tidak valid dalam token")
		}
		return parsed, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "user_id tidak dikenali")
	}
}

// GetUserRole mengambil role dari locals (diset oleh AuthMiddleware).
func GetUserRole(c *fiber.Ctx) string {
	if role, ok := c.Locals("userRole").(string); ok {
		return role
	}
	return ""
}

// GetUserName mengambil user_name dari locals bila ada.
func GetUserName(c *fiber.Ctx) string {
	if name, ok := c.Locals("user_name").(string); ok {
		return name
	}
	return ""
}
