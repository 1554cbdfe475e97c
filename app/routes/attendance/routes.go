package attendance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
)

// RegisterRoutes registers the attendance sheet and reconciler routes.
func RegisterRoutes(app *fiber.App, store database.AttendanceStore, students database.StudentStore, classes database.ClassStore) {
	api := app.Group("/api/attendance")

	api.Get("/class/:classId/date/:date", SheetHandler(store, students, classes))
	api.Post("/class/:classId/date/:date", ReconcileHandler(store, students, classes))
}
