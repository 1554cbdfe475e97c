package progress

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
)

// RegisterRoutes registers the lesson progress routes, scoped to one
// class and one date.
func RegisterRoutes(app *fiber.App, store database.ProgressStore, classes database.ClassStore) {
	api := app.Group("/api/classes/:classId/progress")

	api.Get("/", ListProgressHandler(store, classes))
	api.Post("/", CreateProgressHandler(store, classes))
	api.Put("/:id", UpdateProgressHandler(store))
	api.Delete("/:id", DeleteProgressHandler(store))
}
