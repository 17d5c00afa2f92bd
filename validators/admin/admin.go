package adminValidator

import (
	adminControllers "tfoc/controllers/admin"
	"tfoc/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AdjustHours validates the audited hour-edit body.
func AdjustHours() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminControllers.AdjustHoursRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Hours":
					errors["hours"] = "Hours must not be negative!"
				case "Reason":
					errors["reason"] = "A reason is required for every hour adjustment!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdjustHours", reqData)
		return c.Next()
	}
}

// UpdateStatus validates the enrollment status body.
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminControllers.StatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of: active, completed, suspended, refunded!",
			})
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
