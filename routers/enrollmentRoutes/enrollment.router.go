package enrollmentRoutes

import (
	checkoutControllers "tfoc/controllers/checkout"
	enrollmentControllers "tfoc/controllers/enrollment"
	"tfoc/middleware"
	checkoutValidators "tfoc/validators/checkout"
	enrollmentValidators "tfoc/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollment")
	enrollGroup.Get("/active", middleware.JWTMiddleware, enrollmentControllers.GetActiveEnrollment)
	enrollGroup.Get("/list", middleware.JWTMiddleware, enrollmentValidators.EnrollmentList(), enrollmentControllers.GetEnrollmentList)
	enrollGroup.Get("/:id/hour-log", middleware.JWTMiddleware, enrollmentValidators.EnrollmentID(), enrollmentControllers.GetEnrollmentHourLog)

	checkoutGroup := app.Group("/checkout")
	checkoutGroup.Post("/confirm", middleware.JWTMiddleware, checkoutValidators.ConfirmCheckout(), checkoutControllers.ConfirmCheckout)
	checkoutGroup.Get("/session/:ref", middleware.JWTMiddleware, checkoutControllers.GetCheckoutSession)
}
