package courses

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitamong/class-recoreder-v2/app/database/inmem"
	"github.com/vitamong/class-recoreder-v2/app/models"
	"github.com/vitamong/class-recoreder-v2/app/storage"
)

func setup(t *testing.T) (*fiber.App, *inmem.Store, *storage.MemoryPlanStore) {
	t.Helper()
	store := inmem.Open()
	plans := storage.NewMemoryPlanStore()
	app := fiber.New(fiber.Config{BodyLimit: storage.MaxPlanSize + 1<<20})
	RegisterRoutes(app, store, plans)
	return app, store, plans
}

type courseFormInput struct {
	year, semester, name string
	planName             string
	planData             []byte
}

func sendCourseForm(t *testing.T, app *fiber.App, method, url string, form courseFormInput) (int, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("year", form.year))
	require.NoError(t, w.WriteField("semester", form.semester))
	require.NoError(t, w.WriteField("name", form.name))
	if form.planName != "" {
		fw, err := w.CreateFormFile("plan", form.planName)
		require.NoError(t, err)
		_, err = fw.Write(form.planData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &decoded))
	return resp.StatusCode, decoded
}

func TestCreateCourse(t *testing.T) {
	app, store, _ := setup(t)

	code, _ := sendCourseForm(t, app, "POST", "/api/courses", courseFormInput{
		year: "2025", semester: "1", name: "Algebra",
	})
	require.Equal(t, 201, code)

	courses, err := store.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 2025, courses[0].Year)
	assert.Equal(t, 1, courses[0].Semester)
	assert.Equal(t, "Algebra", courses[0].Name)
	assert.NotEmpty(t, courses[0].ID)
	assert.False(t, courses[0].CreatedAt.IsZero())
}

func TestCreateCourseRequiresName(t *testing.T) {
	app, store, plans := setup(t)

	code, _ := sendCourseForm(t, app, "POST", "/api/courses", courseFormInput{
		year: "2025", semester: "1", name: "  ",
	})
	assert.Equal(t, 400, code)

	// A rejected form produces zero document and zero blob mutations.
	courses, err := store.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.Zero(t, plans.Len())
}

func TestCreateCourseRejectsOversizedPlan(t *testing.T) {
	app, store, plans := setup(t)

	code, _ := sendCourseForm(t, app, "POST", "/api/courses", courseFormInput{
		year: "2025", semester: "1", name: "Algebra",
		planName: "plan.pdf",
		planData: bytes.Repeat([]byte("a"), storage.MaxPlanSize+1),
	})
	assert.Equal(t, 400, code)

	courses, err := store.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.Zero(t, plans.Len())
}

func TestCreateCourseRejectsNonPDF(t *testing.T) {
	app, _, plans := setup(t)

	code, _ := sendCourseForm(t, app, "POST", "/api/courses", courseFormInput{
		year: "2025", semester: "1", name: "Algebra",
		planName: "plan.docx",
		planData: []byte("not a pdf"),
	})
	assert.Equal(t, 400, code)
	assert.Zero(t, plans.Len())
}

func TestCreateCourseUploadsPlan(t *testing.T) {
	app, store, plans := setup(t)

	code, _ := sendCourseForm(t, app, "POST", "/api/courses", courseFormInput{
		year: "2025", semester: "2", name: "Geometry",
		planName: "syllabus.pdf",
		planData: []byte("%PDF-1.4"),
	})
	require.Equal(t, 201, code)

	courses, err := store.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.NotEmpty(t, courses[0].PdfURL)
	assert.Contains(t, courses[0].PdfPath, "plans/")
	assert.Contains(t, courses[0].PdfPath, "syllabus.pdf")
	assert.True(t, plans.Has(courses[0].PdfPath))
}

func TestListCoursesOrdering(t *testing.T) {
	app, _, _ := setup(t)

	for _, form := range []courseFormInput{
		{year: "2024", semester: "1", name: "Old Algebra"},
		{year: "2025", semester: "1", name: "Algebra"},
		{year: "2024", semester: "2", name: "Late Algebra"},
	} {
		code, _ := sendCourseForm(t, app, "POST", "/api/courses", form)
		require.Equal(t, 201, code)
	}

	req := httptest.NewRequest("GET", "/api/courses", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Courses []*models.Course `json:"courses"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Courses, 3)
	// Year descending, then semester descending.
	assert.Equal(t, "Algebra", body.Courses[0].Name)
	assert.Equal(t, "Late Algebra", body.Courses[1].Name)
	assert.Equal(t, "Old Algebra", body.Courses[2].Name)
}

func TestUpdateCourseReplacesPlan(t *testing.T) {
	app, store, plans := setup(t)

	code, _ := sendCourseForm(t, app, "POST", "/api/courses", courseFormInput{
		year: "2025", semester: "1", name: "Algebra",
		planName: "v1.pdf", planData: []byte("%PDF-1.4 v1"),
	})
	require.Equal(t, 201, code)
	courses, err := store.ListCourses(context.Background())
	require.NoError(t, err)
	oldPath := courses[0].PdfPath

	code, _ = sendCourseForm(t, app, "PUT", "/api/courses/"+courses[0].ID, courseFormInput{
		year: "2025", semester: "1", name: "Algebra II",
		planName: "v2.pdf", planData: []byte("%PDF-1.4 v2"),
	})
	require.Equal(t, 200, code)

	updated, err := store.GetCourse(context.Background(), courses[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra II", updated.Name)
	assert.NotEqual(t, oldPath, updated.PdfPath)
	assert.False(t, plans.Has(oldPath))
	assert.True(t, plans.Has(updated.PdfPath))
	// Full-field overwrite still keeps the original creation time.
	assert.Equal(t, courses[0].CreatedAt, updated.CreatedAt)
}

func TestUpdateCourseKeepsPlanWhenNoneUploaded(t *testing.T) {
	app, store, plans := setup(t)

	code, _ := sendCourseForm(t, app, "POST", "/api/courses", courseFormInput{
		year: "2025", semester: "1", name: "Algebra",
		planName: "v1.pdf", planData: []byte("%PDF-1.4"),
	})
	require.Equal(t, 201, code)
	courses, err := store.ListCourses(context.Background())
	require.NoError(t, err)

	code, _ = sendCourseForm(t, app, "PUT", "/api/courses/"+courses[0].ID, courseFormInput{
		year: "2025", semester: "1", name: "Algebra II",
	})
	require.Equal(t, 200, code)

	updated, err := store.GetCourse(context.Background(), courses[0].ID)
	require.NoError(t, err)
	assert.Equal(t, courses[0].PdfPath, updated.PdfPath)
	assert.True(t, plans.Has(updated.PdfPath))
}

func TestDeleteCourseRemovesPlan(t *testing.T) {
	app, store, plans := setup(t)

	code, _ := sendCourseForm(t, app, "POST", "/api/courses", courseFormInput{
		year: "2025", semester: "1", name: "Algebra",
		planName: "syllabus.pdf", planData: []byte("%PDF-1.4"),
	})
	require.Equal(t, 201, code)
	courses, err := store.ListCourses(context.Background())
	require.NoError(t, err)
	path := courses[0].PdfPath
	require.True(t, plans.Has(path))

	req := httptest.NewRequest("DELETE", "/api/courses/"+courses[0].ID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	_, err = store.GetCourse(context.Background(), courses[0].ID)
	assert.Error(t, err)
	assert.False(t, plans.Has(path))
}

func TestGetCourseNotFound(t *testing.T) {
	app, _, _ := setup(t)

	req := httptest.NewRequest("GET", "/api/courses/missing", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
