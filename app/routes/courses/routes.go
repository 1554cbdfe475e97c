package courses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
	"github.com/vitamong/class-recoreder-v2/app/storage"
)

// RegisterRoutes registers the course registry routes.
func RegisterRoutes(app *fiber.App, store database.CourseStore, plans storage.PlanStore) {
	api := app.Group("/api/courses")

	api.Get("/", ListCoursesHandler(store))
	api.Get("/:id", GetCourseHandler(store))
	api.Post("/", CreateCourseHandler(store, plans))
	api.Put("/:id", UpdateCourseHandler(store, plans))
	api.Delete("/:id", DeleteCourseHandler(store, plans))
}
