package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
)

// RegisterRoutes registers the class registry routes. Courses are needed
// to copy year/semester/name from the selected course at write time.
func RegisterRoutes(app *fiber.App, store database.ClassStore, courses database.CourseStore) {
	api := app.Group("/api/classes")

	api.Get("/", ListClassesHandler(store))
	api.Get("/:id", GetClassHandler(store))
	api.Post("/", CreateClassHandler(store, courses))
	api.Put("/:id", UpdateClassHandler(store, courses))
	api.Delete("/:id", DeleteClassHandler(store))
}
