package trackValidator

import (
	"fmt"
	"strconv"
	"strings"
	"tfoc/config"
	trackControllers "tfoc/controllers/track"
	"tfoc/middleware"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
)

// maxSyncSeconds bounds a single incremental report. The client flushes
// every 30 seconds, so anything past an hour is garbage input, not drift.
const maxSyncSeconds = 3600 * 4

// TimeSync validates the incremental sync body.
func TimeSync() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(trackControllers.TimeSyncRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EnrollmentID == 0 {
			errors["enrollmentId"] = "Enrollment ID is required!"
		}
		if reqData.ArticleID == 0 {
			errors["articleId"] = "Article ID is required!"
		}
		if reqData.SecondsToAdd <= 0 {
			errors["secondsToAdd"] = "Seconds to add must be greater than 0!"
		} else if reqData.SecondsToAdd > maxSyncSeconds {
			errors["secondsToAdd"] = "Seconds to add is out of range!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTimeSync", reqData)
		return c.Next()
	}
}

// SaveProgress validates the absolute progress body.
func SaveProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(trackControllers.ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EnrollmentID == 0 {
			errors["enrollmentId"] = "Enrollment ID is required!"
		}
		if reqData.ArticleID == 0 {
			errors["articleId"] = "Article ID is required!"
		}
		if reqData.SecondsSpent < 0 {
			errors["secondsSpent"] = "Seconds spent must not be negative!"
		}
		if reqData.Status != "" && reqData.Status != "reading" && reqData.Status != "reflecting" && reqData.Status != "completed" {
			errors["status"] = "Invalid status!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// GetProgress validates the resume query parameters.
func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		enrollmentID, err := strconv.Atoi(strings.TrimSpace(c.Query("enrollmentId")))
		if err != nil || enrollmentID <= 0 {
			errors["enrollmentId"] = "Invalid enrollment ID!"
		}

		articleID, err := strconv.Atoi(strings.TrimSpace(c.Query("articleId")))
		if err != nil || articleID <= 0 {
			errors["articleId"] = "Invalid article ID!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("enrollmentID", uint(enrollmentID))
		c.Locals("articleID", uint(articleID))
		return c.Next()
	}
}

// Reflection validates a reflection submission. The minimum response
// length comes from REFLECTION_MIN_LENGTH, not a hardcoded constant.
func Reflection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(trackControllers.ReflectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.ResponseText = strings.TrimSpace(reqData.ResponseText)

		errors := make(map[string]string)

		if reqData.EnrollmentID == 0 {
			errors["enrollmentId"] = "Enrollment ID is required!"
		}
		if reqData.ArticleID == 0 {
			errors["articleId"] = "Article ID is required!"
		}

		if minLen := config.AppConfig.ReflectionMinLen; utf8.RuneCountInString(reqData.ResponseText) < minLen {
			errors["responseText"] = fmt.Sprintf("Reflection must be at least %d characters long!", minLen)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReflection", reqData)
		return c.Next()
	}
}
