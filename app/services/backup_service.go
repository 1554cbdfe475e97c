// Package services holds application services that sit behind the route
// handlers. The backup service snapshots every collection into a Google
// spreadsheet, one worksheet per collection.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vitamong/class-recoreder-v2/app/database"
	"github.com/vitamong/class-recoreder-v2/app/models"
)

// SheetWriter is the slice of the spreadsheet service the exporter needs.
type SheetWriter interface {
	// EnsureWorksheet creates the worksheet when absent and clears it
	// when present.
	EnsureWorksheet(ctx context.Context, spreadsheetID, title string) error
	WriteWorksheet(ctx context.Context, spreadsheetID, title string, values [][]interface{}) error
}

// SheetExport reports what happened to one worksheet during an export.
type SheetExport struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Skipped bool   `json:"skipped"`
}

// BackupService exports the document store to a spreadsheet. The export
// is not transactional: a failure partway through leaves the sheets
// written so far updated and the rest untouched.
type BackupService struct {
	writer SheetWriter
	stores database.Stores
}

func NewBackupService(writer SheetWriter, stores database.Stores) *BackupService {
	return &BackupService{writer: writer, stores: stores}
}

// Export writes the courses, classes and attendance collections and the
// flattened students and progress sub-collections to the spreadsheet.
// Empty collections are reported as skipped and get no sheet write.
func (s *BackupService) Export(ctx context.Context, spreadsheetID string) ([]SheetExport, error) {
	var report []SheetExport

	classes, err := s.stores.Classes.ListClasses(ctx)
	if err != nil {
		return report, err
	}

	sheets := []struct {
		name  string
		table func() ([][]interface{}, error)
	}{
		{"courses", func() ([][]interface{}, error) {
			courses, err := s.stores.Courses.ListCourses(ctx)
			if err != nil {
				return nil, err
			}
			return courseTable(courses), nil
		}},
		{"classes", func() ([][]interface{}, error) {
			return classTable(classes), nil
		}},
		{"attendance", func() ([][]interface{}, error) {
			records, err := s.stores.Attendance.ListAttendance(ctx)
			if err != nil {
				return nil, err
			}
			return attendanceTable(records), nil
		}},
		{"students", func() ([][]interface{}, error) {
			return s.studentTable(ctx, classes)
		}},
		{"progress", func() ([][]interface{}, error) {
			return s.progressTable(ctx, classes)
		}},
	}

	for _, sheet := range sheets {
		table, err := sheet.table()
		if err != nil {
			return report, fmt.Errorf("read %s: %w", sheet.name, err)
		}
		// A table with only the header row means an empty collection.
		if len(table) <= 1 {
			report = append(report, SheetExport{Name: sheet.name, Skipped: true})
			continue
		}
		if err := s.writer.EnsureWorksheet(ctx, spreadsheetID, sheet.name); err != nil {
			return report, fmt.Errorf("prepare sheet %s: %w", sheet.name, err)
		}
		if err := s.writer.WriteWorksheet(ctx, spreadsheetID, sheet.name, table); err != nil {
			return report, fmt.Errorf("write sheet %s: %w", sheet.name, err)
		}
		report = append(report, SheetExport{Name: sheet.name, Rows: len(table) - 1})
	}
	return report, nil
}

func (s *BackupService) studentTable(ctx context.Context, classes []*models.Class) ([][]interface{}, error) {
	table := [][]interface{}{{"id", "class_id", "class_name", "student_number", "name", "created_at"}}
	for _, class := range classes {
		students, err := s.stores.Students.ListStudents(ctx, class.ID)
		if err != nil {
			return nil, err
		}
		for _, st := range students {
			table = append(table, []interface{}{
				st.ID, class.ID, class.ClassName, st.StudentNumber, st.Name, formatTimestamp(st.CreatedAt),
			})
		}
	}
	return table, nil
}

func (s *BackupService) progressTable(ctx context.Context, classes []*models.Class) ([][]interface{}, error) {
	table := [][]interface{}{{"id", "class_id", "class_name", "date", "period", "topic", "notes", "created_at"}}
	for _, class := range classes {
		entries, err := s.stores.Progress.ListProgress(ctx, class.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			table = append(table, []interface{}{
				e.ID, class.ID, class.ClassName, e.Date, e.Period, e.Topic, e.Notes, formatTimestamp(e.CreatedAt),
			})
		}
	}
	return table, nil
}

func courseTable(courses []*models.Course) [][]interface{} {
	table := [][]interface{}{{"id", "year", "semester", "name", "pdf_url", "pdf_path", "created_at"}}
	for _, c := range courses {
		table = append(table, []interface{}{
			c.ID, c.Year, c.Semester, c.Name, c.PdfURL, c.PdfPath, formatTimestamp(c.CreatedAt),
		})
	}
	return table
}

func classTable(classes []*models.Class) [][]interface{} {
	table := [][]interface{}{{"id", "course_id", "course_name", "year", "semester", "class_name", "schedule", "created_at"}}
	for _, c := range classes {
		table = append(table, []interface{}{
			c.ID, c.CourseID, c.CourseName, c.Year, c.Semester, c.ClassName,
			formatSchedule(c.Schedule), formatTimestamp(c.CreatedAt),
		})
	}
	return table
}

func attendanceTable(records []*models.AttendanceRecord) [][]interface{} {
	table := [][]interface{}{{"id", "class_id", "student_id", "student_number", "student_name", "date", "status", "notes", "last_updated_at"}}
	for _, r := range records {
		table = append(table, []interface{}{
			r.ID, r.ClassID, r.StudentID, r.StudentNumber, r.StudentName,
			r.Date, string(r.Status), r.Notes, formatTimestamp(r.LastUpdatedAt),
		})
	}
	return table
}

func formatSchedule(schedule []models.SchedulePeriod) string {
	if len(schedule) == 0 {
		return "[]"
	}
	b, err := json.Marshal(schedule)
	if err != nil {
		return ""
	}
	return string(b)
}

// formatTimestamp renders timestamp fields as text for the spreadsheet.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
