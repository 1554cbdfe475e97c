package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitamong/class-recoreder-v2/app/database/inmem"
	"github.com/vitamong/class-recoreder-v2/app/models"
)

func setup(t *testing.T) (*fiber.App, *inmem.Store, *models.Class) {
	t.Helper()
	store := inmem.Open()
	app := fiber.New()
	RegisterRoutes(app, store, store, store)

	class := &models.Class{CourseID: "course1", CourseName: "Algebra", ClassName: "1-1"}
	require.NoError(t, store.CreateClass(context.Background(), class))
	return app, store, class
}

func seedRoster(t *testing.T, store *inmem.Store, classID string) []*models.Student {
	t.Helper()
	students := []*models.Student{
		{StudentNumber: "10101", Name: "Kim Minjun"},
		{StudentNumber: "10102", Name: "Lee Seoyeon"},
		{StudentNumber: "10103", Name: "Park Jiho"},
	}
	for _, st := range students {
		require.NoError(t, store.CreateStudent(context.Background(), classID, st))
	}
	return students
}

func submit(t *testing.T, app *fiber.App, classID, date string, entries []EntryInput) int {
	t.Helper()
	body, err := json.Marshal(fiber.Map{"entries": entries})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/attendance/class/"+classID+"/date/"+date, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestReconcileCreatesOneRecordPerStudent(t *testing.T) {
	app, store, class := setup(t)
	students := seedRoster(t, store, class.ID)

	code := submit(t, app, class.ID, "2025-03-02", []EntryInput{
		{StudentID: students[1].ID, Status: models.Absent, Notes: "sick"},
	})
	require.Equal(t, 200, code)

	records, err := store.ListAttendanceByClassAndDate(context.Background(), class.ID, "2025-03-02")
	require.NoError(t, err)
	require.Len(t, records, 3)

	byStudent := make(map[string]*models.AttendanceRecord)
	for _, r := range records {
		byStudent[r.StudentID] = r
	}
	assert.Equal(t, models.Present, byStudent[students[0].ID].Status)
	assert.Equal(t, models.Absent, byStudent[students[1].ID].Status)
	assert.Equal(t, "sick", byStudent[students[1].ID].Notes)
	assert.Equal(t, models.Present, byStudent[students[2].ID].Status)
	assert.Equal(t, "10102", byStudent[students[1].ID].StudentNumber)
	assert.Equal(t, "Lee Seoyeon", byStudent[students[1].ID].StudentName)
}

func TestReconcileIsIdempotent(t *testing.T) {
	app, store, class := setup(t)
	students := seedRoster(t, store, class.ID)

	entries := []EntryInput{
		{StudentID: students[0].ID, Status: models.Late, Notes: "bus"},
	}
	require.Equal(t, 200, submit(t, app, class.ID, "2025-03-02", entries))
	require.Equal(t, 200, submit(t, app, class.ID, "2025-03-02", entries))

	records, err := store.ListAttendanceByClassAndDate(context.Background(), class.ID, "2025-03-02")
	require.NoError(t, err)
	// The second run updates in place instead of duplicating.
	assert.Len(t, records, 3)
}

func TestReconcileOverwritesInPlace(t *testing.T) {
	app, store, class := setup(t)
	students := seedRoster(t, store, class.ID)

	require.Equal(t, 200, submit(t, app, class.ID, "2025-03-02", []EntryInput{
		{StudentID: students[0].ID, Status: models.Absent},
	}))
	require.Equal(t, 200, submit(t, app, class.ID, "2025-03-02", []EntryInput{
		{StudentID: students[0].ID, Status: models.Excused, Notes: "doctor"},
	}))

	records, err := store.ListAttendanceByClassAndDate(context.Background(), class.ID, "2025-03-02")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		if r.StudentID == students[0].ID {
			assert.Equal(t, models.Excused, r.Status)
			assert.Equal(t, "doctor", r.Notes)
		}
	}
}

func TestReconcileRejectsUnknownStatus(t *testing.T) {
	app, store, class := setup(t)
	students := seedRoster(t, store, class.ID)

	code := submit(t, app, class.ID, "2025-03-02", []EntryInput{
		{StudentID: students[0].ID, Status: models.AttendanceStatus("tardy")},
	})
	assert.Equal(t, 400, code)

	records, err := store.ListAttendanceByClassAndDate(context.Background(), class.ID, "2025-03-02")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReconcileEmptyRoster(t *testing.T) {
	app, _, class := setup(t)
	assert.Equal(t, 400, submit(t, app, class.ID, "2025-03-02", nil))
}

func TestReconcileInvalidDate(t *testing.T) {
	app, _, class := setup(t)
	assert.Equal(t, 400, submit(t, app, class.ID, "03-02-2025", nil))
}

func TestReconcileUnknownClass(t *testing.T) {
	app, _, _ := setup(t)
	assert.Equal(t, 404, submit(t, app, "missing", "2025-03-02", nil))
}

func TestSheetPrefill(t *testing.T) {
	app, store, class := setup(t)
	students := seedRoster(t, store, class.ID)

	require.Equal(t, 200, submit(t, app, class.ID, "2025-03-02", []EntryInput{
		{StudentID: students[2].ID, Status: models.Late, Notes: "overslept"},
	}))

	req := httptest.NewRequest("GET", "/api/attendance/class/"+class.ID+"/date/2025-03-02", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Entries []SheetRow `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Entries, 3)
	assert.Equal(t, models.Present, body.Entries[0].Status)
	assert.Equal(t, models.Late, body.Entries[2].Status)
	assert.Equal(t, "overslept", body.Entries[2].Notes)
}
