package courses

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
	"github.com/vitamong/class-recoreder-v2/app/models"
	"github.com/vitamong/class-recoreder-v2/app/storage"
)

var validate = validator.New()

type courseForm struct {
	Year     int    `validate:"required,min=2020,max=2050"`
	Semester int    `validate:"required,oneof=1 2"`
	Name     string `validate:"required"`
}

// parseCourseForm reads the multipart form fields shared by create and
// update. All validation happens here, before any write.
func parseCourseForm(c *fiber.Ctx) (*courseForm, error) {
	year, err := strconv.Atoi(c.FormValue("year"))
	if err != nil {
		return nil, errors.New("year must be a number")
	}
	semester, err := strconv.Atoi(c.FormValue("semester"))
	if err != nil {
		return nil, errors.New("semester must be a number")
	}
	form := &courseForm{
		Year:     year,
		Semester: semester,
		Name:     strings.TrimSpace(c.FormValue("name")),
	}
	if err := validate.Struct(form); err != nil {
		return nil, errors.New("year, semester and a non-empty name are required")
	}
	return form, nil
}

// planFile returns the uploaded plan file header, nil when none was sent,
// or an error when the file is not an acceptable PDF.
func planFile(c *fiber.Ctx) (*multipart.FileHeader, error) {
	header, err := c.FormFile("plan")
	if err != nil {
		return nil, nil
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return nil, errors.New("plan must be a PDF file")
	}
	if header.Size > storage.MaxPlanSize {
		return nil, errors.New("plan file exceeds the 10MB limit")
	}
	return header, nil
}

func uploadPlan(c *fiber.Ctx, plans storage.PlanStore, header *multipart.FileHeader) (url, path string, err error) {
	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()
	return plans.Upload(c.UserContext(), header.Filename, file)
}

func ListCoursesHandler(store database.CourseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courses, err := store.ListCourses(c.UserContext())
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch courses"})
		}
		return c.JSON(fiber.Map{
			"courses": courses,
			"count":   len(courses),
		})
	}
}

func GetCourseHandler(store database.CourseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		course, err := store.GetCourse(c.UserContext(), c.Params("id"))
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch course"})
		}
		return c.JSON(fiber.Map{"course": course})
	}
}

func CreateCourseHandler(store database.CourseStore, plans storage.PlanStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := parseCourseForm(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		header, err := planFile(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		course := &models.Course{
			Year:     form.Year,
			Semester: form.Semester,
			Name:     form.Name,
		}

		var warning string
		if header != nil {
			url, path, err := uploadPlan(c, plans, header)
			if err == nil {
				course.PdfURL = url
				course.PdfPath = path
			} else {
				// The course is still saved, just without a plan.
				warning = "Failed to upload plan: " + err.Error()
			}
		}

		if err := store.CreateCourse(c.UserContext(), course); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to create course"})
		}

		resp := fiber.Map{
			"message": "Course created successfully",
			"course":  course,
		}
		if warning != "" {
			resp["warning"] = warning
		}
		return c.Status(201).JSON(resp)
	}
}

func UpdateCourseHandler(store database.CourseStore, plans storage.PlanStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		course, err := store.GetCourse(c.UserContext(), c.Params("id"))
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch course"})
		}

		form, err := parseCourseForm(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		header, err := planFile(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		course.Year = form.Year
		course.Semester = form.Semester
		course.Name = form.Name

		var warning string
		if header != nil {
			// Replacing a plan removes the old blob first; if the new
			// upload then fails the course is saved plan-less.
			if course.PdfPath != "" {
				if err := plans.Delete(c.UserContext(), course.PdfPath); err != nil {
					warning = "Failed to delete previous plan: " + err.Error()
				}
			}
			url, path, err := uploadPlan(c, plans, header)
			if err == nil {
				course.PdfURL = url
				course.PdfPath = path
			} else {
				course.PdfURL = ""
				course.PdfPath = ""
				warning = "Failed to upload plan: " + err.Error()
			}
		}

		if err := store.UpdateCourse(c.UserContext(), course); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to update course"})
		}

		resp := fiber.Map{
			"message": "Course updated successfully",
			"course":  course,
		}
		if warning != "" {
			resp["warning"] = warning
		}
		return c.JSON(resp)
	}
}

func DeleteCourseHandler(store database.CourseStore, plans storage.PlanStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		course, err := store.GetCourse(c.UserContext(), c.Params("id"))
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch course"})
		}

		var warning string
		if course.PdfPath != "" {
			if err := plans.Delete(c.UserContext(), course.PdfPath); err != nil {
				warning = "Failed to delete plan: " + err.Error()
			}
		}

		if err := store.DeleteCourse(c.UserContext(), course.ID); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to delete course"})
		}

		resp := fiber.Map{"message": "Course deleted successfully"}
		if warning != "" {
			resp["warning"] = warning
		}
		return c.JSON(resp)
	}
}
