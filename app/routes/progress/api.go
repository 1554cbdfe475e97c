package progress

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vitamong/class-recoreder-v2/app/database"
	"github.com/vitamong/class-recoreder-v2/app/models"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

type progressRequest struct {
	Date   string `json:"date"`
	Period int    `json:"period" validate:"required,min=1,max=8"`
	Topic  string `json:"topic" validate:"required"`
	Notes  string `json:"notes"`
}

// parseProgressRequest validates the entry form. An empty date defaults
// to today, matching the date picker in the original tool.
func parseProgressRequest(c *fiber.Ctx) (*progressRequest, error) {
	var req progressRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if err := validate.Struct(&req); err != nil {
		return nil, errors.New("period must be 1-8 and topic must not be empty")
	}
	if req.Date == "" {
		req.Date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, errors.New("date must use the YYYY-MM-DD format")
	}
	return &req, nil
}

func ListProgressHandler(store database.ProgressStore, classes database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID := c.Params("classId")
		if _, err := classes.GetClass(c.UserContext(), classID); errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		} else if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		date := c.Query("date", time.Now().Format(dateLayout))
		if _, err := time.Parse(dateLayout, date); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}

		entries, err := store.ListProgressByDate(c.UserContext(), classID, date)
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch progress entries"})
		}
		return c.JSON(fiber.Map{
			"progress": entries,
			"count":    len(entries),
			"date":     date,
		})
	}
}

func CreateProgressHandler(store database.ProgressStore, classes database.ClassStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID := c.Params("classId")
		if _, err := classes.GetClass(c.UserContext(), classID); errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		} else if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch class"})
		}

		req, err := parseProgressRequest(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		entry := &models.ProgressEntry{
			Date:   req.Date,
			Period: req.Period,
			Topic:  req.Topic,
			Notes:  req.Notes,
		}
		if err := store.CreateProgressEntry(c.UserContext(), classID, entry); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to create progress entry"})
		}

		return c.Status(201).JSON(fiber.Map{
			"message":  "Progress entry created successfully",
			"progress": entry,
		})
	}
}

func UpdateProgressHandler(store database.ProgressStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID := c.Params("classId")
		entry, err := store.GetProgressEntry(c.UserContext(), classID, c.Params("id"))
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Progress entry not found"})
		}
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch progress entry"})
		}

		req, err := parseProgressRequest(c)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		entry.Date = req.Date
		entry.Period = req.Period
		entry.Topic = req.Topic
		entry.Notes = req.Notes
		if err := store.UpdateProgressEntry(c.UserContext(), classID, entry); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to update progress entry"})
		}

		return c.JSON(fiber.Map{
			"message":  "Progress entry updated successfully",
			"progress": entry,
		})
	}
}

func DeleteProgressHandler(store database.ProgressStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classID := c.Params("classId")
		if _, err := store.GetProgressEntry(c.UserContext(), classID, c.Params("id")); errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Progress entry not found"})
		} else if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to fetch progress entry"})
		}

		if err := store.DeleteProgressEntry(c.UserContext(), classID, c.Params("id")); err != nil {
			return c.Status(502).JSON(fiber.Map{"error": "Failed to delete progress entry"})
		}

		return c.JSON(fiber.Map{"message": "Progress entry deleted successfully"})
	}
}
