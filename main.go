package main

import (
	"tfoc/config"
	"tfoc/database"
	adminRoutes "tfoc/routers/adminRoutes"
	authRoutes "tfoc/routers/authRoutes"
	certificateRoutes "tfoc/routers/certificateRoutes"
	enrollmentRoutes "tfoc/routers/enrollmentRoutes"
	trackRoutes "tfoc/routers/trackRoutes"
	"tfoc/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitializeLogFinalizer()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	trackRoutes.SetupTrackRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
