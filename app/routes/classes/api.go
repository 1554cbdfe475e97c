package classes

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
	"github.com/vitamong/class-recoreder-v2/app/models"
)

var validate = validator.New()

// classRequest carries the class form. Schedule is the per-weekday period
// multi-select, e.g. {"monday": [1, 3], "wednesday": [2]}.
type classRequest struct {
	CourseID  string                     `json:"course_id" validate:"required"`
	ClassName string                     `json:"class_name" validate:"required"`
	Schedule  map[models.DayOfWeek][]int `json:"schedule"`
}

func parseClassRequest(c *fiber.Ctx) (*classRequest, error) {
	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return nil, errors.New("course_id and a non-empty class_name are required")
	}
	return &req, nil
}

func ListClassesHandler(store database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classes, err := store.ListClasses(c.UserContext())
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch classes"})
		}
		return c.JSON(fiber.Map{
			"classes": classes,
			"count":   len(classes),
		})
	}
}

func GetClassHandler(store database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		class, err := store.GetClass(c.UserContext(), c.Params("id"))
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}
		return c.JSON(fiber.Map{"class": class})
	}
}

func CreateClassHandler(store database.ClassStore, courses database.CourseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseClassRequest(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		course, err := courses.GetCourse(c.UserContext(), req.CourseID)
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(400).JSON(fiber.Map{"error": "Selected course does not exist"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch course"})
		}

		class := &models.Class{
			CourseID:   course.ID,
			CourseName: course.Name,
			Year:       course.Year,
			Semester:   course.Semester,
			ClassName:  req.ClassName,
			Schedule:   models.FlattenSchedule(req.Schedule),
		}

		if err := store.CreateClass(c.UserContext(), class); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to create class"})
		}

		return c.Status(201).JSON(fiber.Map{
			"message": "Class created successfully",
			"class":   class,
		})
	}
}

func UpdateClassHandler(store database.ClassStore, courses database.CourseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		class, err := store.GetClass(c.UserContext(), c.Params("id"))
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		req, err := parseClassRequest(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		course, err := courses.GetCourse(c.UserContext(), req.CourseID)
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(400).JSON(fiber.Map{"error": "Selected course does not exist"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch course"})
		}

		// Course fields are re-copied and the schedule is replaced as a
		// whole; edits are full overwrites, not increments.
		class.CourseID = course.ID
		class.CourseName = course.Name
		class.Year = course.Year
		class.Semester = course.Semester
		class.ClassName = req.ClassName
		class.Schedule = models.FlattenSchedule(req.Schedule)

		if err := store.UpdateClass(c.UserContext(), class); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to update class"})
		}

		return c.JSON(fiber.Map{
			"message": "Class updated successfully",
			"class":   class,
		})
	}
}

func DeleteClassHandler(store database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := store.GetClass(c.UserContext(), c.Params("id")); errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		} else if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		if err := store.DeleteClass(c.UserContext(), c.Params("id")); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to delete class"})
		}

		return c.JSON(fiber.Map{"message": "Class deleted successfully"})
	}
}
