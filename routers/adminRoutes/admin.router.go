package adminRoutes

import (
	adminControllers "tfoc/controllers/admin"
	"tfoc/middleware"
	adminValidators "tfoc/validators/admin"
	enrollmentValidators "tfoc/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/enrollment/list", enrollmentValidators.EnrollmentList(), adminControllers.GetEnrollmentList)
	adminGroup.Patch("/enrollment/:id/hours", enrollmentValidators.EnrollmentID(), adminValidators.AdjustHours(), adminControllers.AdjustHours)
	adminGroup.Patch("/enrollment/:id/status", enrollmentValidators.EnrollmentID(), adminValidators.UpdateStatus(), adminControllers.UpdateEnrollmentStatus)
	adminGroup.Post("/enrollment/:id/certificate/regenerate", enrollmentValidators.EnrollmentID(), adminControllers.RegenerateCertificate)
}
