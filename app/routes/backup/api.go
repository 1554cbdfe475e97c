package backup

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/services"
)

// ExportHandler snapshots every collection into the target spreadsheet.
// The export is not transactional: on failure the sheets written so far
// stay updated, and the partial report is returned with the error.
func ExportHandler(svc *services.BackupService, defaultSpreadsheetID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			SpreadsheetID string `json:"spreadsheet_id"`
		}
		// The body is optional when a default target is configured.
		_ = c.BodyParser(&body)

		spreadsheetID := body.SpreadsheetID
		if spreadsheetID == "" {
			spreadsheetID = c.Query("spreadsheet_id")
		}
		if spreadsheetID == "" {
			spreadsheetID = defaultSpreadsheetID
		}
		if spreadsheetID == "" {
			return c.Status(400).JSON(fiber.Map{"error": "A spreadsheet_id is required"})
		}

		report, err := svc.Export(c.UserContext(), spreadsheetID)
		if err != nil {
			return c.Status(502).JSON(fiber.Map{
				"error":  "Export failed: " + err.Error(),
				"sheets": report,
			})
		}

		return c.JSON(fiber.Map{
			"message": "Backup completed successfully",
			"sheets":  report,
		})
	}
}
