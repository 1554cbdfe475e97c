package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
)

// RegisterRoutes registers the roster routes, all scoped to one class.
func RegisterRoutes(app *fiber.App, store database.StudentStore, classes database.ClassStore) {
	api := app.Group("/api/classes/:classId/students")

	api.Get("/", ListStudentsHandler(store, classes))
	api.Post("/", CreateStudentHandler(store, classes))
	api.Post("/import", ImportStudentsHandler(store, classes))
	api.Put("/:id", UpdateStudentHandler(store))
	api.Delete("/:id", DeleteStudentHandler(store))
}
