package attendance

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
)

const dateLayout = "2006-01-02"

func sheetScope(c *fiber.Ctx, classes database.ClassStore) (classID, date string, err error) {
	classID = c.Params("classId")
	date = c.Params("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", "", errors.New("invalid date format, use YYYY-MM-DD")
	}
	if _, err := classes.GetClass(c.UserContext(), classID); err != nil {
		return "", "", err
	}
	return classID, date, nil
}

// SheetHandler returns the editable attendance sheet for a class and
// date: one pre-filled row per roster student.
func SheetHandler(store database.AttendanceStore, students database.StudentStore, classes database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID, date, err := sheetScope(c, classes)
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		if err != nil {
			if _, parseErr := time.Parse(dateLayout, c.Params("date")); parseErr != nil {
				return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
			}
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		roster, err := students.ListStudents(c.UserContext(), classID)
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch students"})
		}
		existing, err := store.ListAttendanceByClassAndDate(c.UserContext(), classID, date)
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
		}

		rows := BuildSheet(roster, existing)
		return c.JSON(fiber.Map{
			"class_id": classID,
			"date":     date,
			"entries":  rows,
			"count":    len(rows),
		})
	}
}

// ReconcileHandler merges a batch submission against the current roster
// and upserts one record per student in a single all-or-nothing batch.
func ReconcileHandler(store database.AttendanceStore, students database.StudentStore, classes database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID, date, err := sheetScope(c, classes)
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		if err != nil {
			if _, parseErr := time.Parse(dateLayout, c.Params("date")); parseErr != nil {
				return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
			}
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		var body struct {
			Entries []EntryInput `json:"entries"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
		}
		for _, in := range body.Entries {
			if in.Status != "" && !in.Status.IsValid() {
				return c.Status(400).JSON(fiber.Map{"error": "Status must be one of present, absent, late, excused"})
			}
		}

		roster, err := students.ListStudents(c.UserContext(), classID)
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch students"})
		}
		if len(roster) == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "This class has no students"})
		}
		existing, err := store.ListAttendanceByClassAndDate(c.UserContext(), classID, date)
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
		}

		records := BuildReconcilePlan(classID, date, roster, existing, body.Entries)
		if err := store.UpsertAttendance(c.UserContext(), records); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to save attendance"})
		}

		return c.JSON(fiber.Map{
			"message": "Attendance saved successfully",
			"count":   len(records),
		})
	}
}
