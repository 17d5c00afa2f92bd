package checkoutValidator

import (
	"strings"
	"tfoc/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ConfirmCheckout validates the checkout confirmation body. Session refs
// are provider-issued UUIDs.
func ConfirmCheckout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SessionRef string `json:"sessionRef"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		sessionRef := strings.TrimSpace(reqData.SessionRef)
		if sessionRef == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session reference is required!", nil)
		}

		if _, err := uuid.Parse(sessionRef); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session reference!", nil)
		}

		c.Locals("sessionRef", sessionRef)
		return c.Next()
	}
}
