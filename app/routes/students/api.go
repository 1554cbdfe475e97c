package students

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
	"github.com/vitamong/class-recoreder-v2/app/models"
)

var validate = validator.New()

type studentRequest struct {
	StudentNumber string `json:"student_number" validate:"required"`
	Name          string `json:"name" validate:"required"`
}

func parseStudentRequest(c *fiber.Ctx) (*studentRequest, error) {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	req.StudentNumber = strings.TrimSpace(req.StudentNumber)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(&req); err != nil {
		return nil, errors.New("student_number and name are both required")
	}
	return &req, nil
}

func requireClass(c *fiber.Ctx, classes database.ClassStore) (string, error) {
	classID := c.Params("classId")
	if _, err := classes.GetClass(c.UserContext(), classID); err != nil {
		return "", err
	}
	return classID, nil
}

func ListStudentsHandler(store database.StudentStore, classes database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID, err := requireClass(c, classes)
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		students, err := store.ListStudents(c.UserContext(), classID)
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch students"})
		}
		return c.JSON(fiber.Map{
			"students": students,
			"count":    len(students),
		})
	}
}

func CreateStudentHandler(store database.StudentStore, classes database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID, err := requireClass(c, classes)
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		req, err := parseStudentRequest(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		student := &models.Student{
			StudentNumber: req.StudentNumber,
			Name:          req.Name,
		}
		if err := store.CreateStudent(c.UserContext(), classID, student); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to create student"})
		}

		return c.Status(201).JSON(fiber.Map{
			"message": "Student created successfully",
			"student": student,
		})
	}
}

func UpdateStudentHandler(store database.StudentStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID := c.Params("classId")
		student, err := store.GetStudent(c.UserContext(), classID, c.Params("id"))
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch student"})
		}

		req, err := parseStudentRequest(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		student.StudentNumber = req.StudentNumber
		student.Name = req.Name
		if err := store.UpdateStudent(c.UserContext(), classID, student); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to update student"})
		}

		return c.JSON(fiber.Map{
			"message": "Student updated successfully",
			"student": student,
		})
	}
}

func DeleteStudentHandler(store database.StudentStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID := c.Params("classId")
		if _, err := store.GetStudent(c.UserContext(), classID, c.Params("id")); errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		} else if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch student"})
		}

		if err := store.DeleteStudent(c.UserContext(), classID, c.Params("id")); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to delete student"})
		}

		return c.JSON(fiber.Map{"message": "Student deleted successfully"})
	}
}

// ImportStudentsHandler bulk-imports a roster from an uploaded CSV file.
// The whole file is parsed and validated first; all rows are then written
// in a single batch, so a failed import leaves nothing behind.
func ImportStudentsHandler(store database.StudentStore, classes database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID, err := requireClass(c, classes)
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		header, err := c.FormFile("file")
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "A CSV file is required"})
		}
		file, err := header.Open()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
		}
		defer file.Close()

		imported, err := ParseRoster(file)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		if err := store.CreateStudents(c.UserContext(), classID, imported); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to import students"})
		}

		return c.Status(201).JSON(fiber.Map{
			"message": "Students imported successfully",
			"count":   len(imported),
		})
	}
}
