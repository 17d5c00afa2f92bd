package certificateRoutes

import (
	certificateControllers "tfoc/controllers/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes wires the public verification and document
// endpoints. No auth: courts and agencies verify with the code alone.
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificate")

	certGroup.Get("/verify/:code", certificateControllers.VerifyCertificate)
	certGroup.Get("/:code/document", certificateControllers.GetCertificateDocument)
	certGroup.Get("/:code/hour-log", certificateControllers.GetHourLogDocument)
}
