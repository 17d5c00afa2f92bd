package authRoutes

import (
	authControllers "tfoc/controllers/auth"
	"tfoc/middleware"
	authValidators "tfoc/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Patch("/timezone", middleware.JWTMiddleware, authValidators.UpdateTimezone(), authControllers.UpdateTimezone)
}
