package backup

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
	"github.com/vitamong/class-recoreder-v2/app/services"
)

type spreadsheetRecorder struct {
	targets []string
}

func (w *spreadsheetRecorder) EnsureWorksheet(ctx context.Context, spreadsheetID, title string) error {
	w.targets = append(w.targets, spreadsheetID)
	return nil
}

func (w *spreadsheetRecorder) WriteWorksheet(ctx context.Context, spreadsheetID, title string, values [][]interface{}) error {
	return nil
}

var _ services.SheetWriter = (*spreadsheetRecorder)(nil)

func setup(t *testing.T, defaultSpreadsheetID string) (*fiber.App, *spreadsheetRecorder) {
	t.Helper()
	store := inmem.Open()
	course := &models.Course{Year: 2025, Semester: 1, Name: "Algebra"}
	require.NoError(t, store.CreateCourse(context.Background(), course))

	writer := &spreadsheetRecorder{}
	app := fiber.New()
	RegisterRoutes(app, services.NewBackupService(writer, store.Stores()), defaultSpreadsheetID)
	return app, writer
}

func export(t *testing.T, app *fiber.App, body any) int {
	t.Helper()
	var r *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(payload)
	} else {
		r = bytes.NewReader(nil)
	}
	request := httptest.NewRequest("POST", "/api/backup/export", r)
	request.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(request, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestExportUsesRequestSpreadsheet(t *testing.T) {
	app, writer := setup(t, "default-sheet")

	code := export(t, app, fiber.Map{"spreadsheet_id": "my-sheet"})
	require.Equal(t, 200, code)
	require.NotEmpty(t, writer.targets)
	assert.Equal(t, "my-sheet", writer.targets[0])
}

func TestExportFallsBackToDefault(t *testing.T) {
	app, writer := setup(t, "default-sheet")

	code := export(t, app, nil)
	require.Equal(t, 200, code)
	require.NotEmpty(t, writer.targets)
	assert.Equal(t, "default-sheet", writer.targets[0])
}

func TestExportRequiresSomeSpreadsheet(t *testing.T) {
	app, writer := setup(t, "")

	code := export(t, app, nil)
	assert.Equal(t, 400, code)
	assert.Empty(t, writer.targets)
}
