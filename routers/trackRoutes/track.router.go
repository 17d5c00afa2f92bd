package trackRoutes

import (
	articleControllers "tfoc/controllers/article"
	trackControllers "tfoc/controllers/track"
	"tfoc/middleware"
	trackValidators "tfoc/validators/track"

	"github.com/gofiber/fiber/v2"
)

// SetupTrackRoutes wires the reading library and time-tracking endpoints.
func SetupTrackRoutes(app *fiber.App) {
	articleGroup := app.Group("/article")
	articleGroup.Get("/list", middleware.JWTMiddleware, articleControllers.GetArticleList)
	articleGroup.Get("/:slug", middleware.JWTMiddleware, articleControllers.GetArticle)

	trackGroup := app.Group("/track")
	trackGroup.Post("/time-sync", middleware.JWTMiddleware, trackValidators.TimeSync(), trackControllers.TimeSync)
	trackGroup.Post("/progress", middleware.JWTMiddleware, trackValidators.SaveProgress(), trackControllers.SaveProgress)
	trackGroup.Get("/progress", middleware.JWTMiddleware, trackValidators.GetProgress(), trackControllers.GetProgress)
	trackGroup.Post("/reflection", middleware.JWTMiddleware, trackValidators.Reflection(), trackControllers.SubmitReflection)
}
