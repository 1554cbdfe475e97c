package backup

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/services"
)

// RegisterRoutes registers the spreadsheet backup route.
// defaultSpreadsheetID may be empty; requests must then carry their own.
func RegisterRoutes(app *fiber.App, svc *services.BackupService, defaultSpreadsheetID string) {
	api := app.Group("/api/backup")

	api.Post("/export", ExportHandler(svc, defaultSpreadsheetID))
}
