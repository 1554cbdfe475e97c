package students

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vitamong/class-recoreder-v2/app/models"
)

// ErrMissingColumns is returned when the CSV lacks the required
// student-number or name column.
var ErrMissingColumns = errors.New("CSV must contain student_number and name columns")

// Accepted header spellings. The Korean forms match the spreadsheet
// layout the original classroom tool exported, so those files import
// unchanged.
var (
	studentNumberHeaders = []string{"student_number", "student number", "학번"}
	nameHeaders          = []string{"name", "이름"}
)

func findColumn(header []string, accepted []string) int {
	for i, cell := range header {
		cell = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\uFEFF")))
		for _, want := range accepted {
			if cell == want {
				return i
			}
		}
	}
	return -1
}

// ParseRoster reads a two-column roster CSV into new students. Every row
// must carry a non-empty student number and name; any bad row fails the
// whole import. Values are kept verbatim as strings.
func ParseRoster(r io.Reader) ([]*models.Student, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrMissingColumns
	}

	numberIdx := findColumn(records[0], studentNumberHeaders)
	nameIdx := findColumn(records[0], nameHeaders)
	if numberIdx < 0 || nameIdx < 0 {
		return nil, ErrMissingColumns
	}

	var students []*models.Student
	for i, row := range records[1:] {
		number := strings.TrimSpace(row[numberIdx])
		name := strings.TrimSpace(row[nameIdx])
		if number == "" && name == "" {
			continue // blank line
		}
		if number == "" || name == "" {
			return nil, fmt.Errorf("row %d: student number and name are both required", i+2)
		}
		students = append(students, &models.Student{
			StudentNumber: number,
			Name:          name,
		})
	}
	if len(students) == 0 {
		return nil, errors.New("CSV contains no student rows")
	}
	return students, nil
}
