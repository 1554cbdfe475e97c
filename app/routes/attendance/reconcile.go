package attendance

import (
	"github.com/vitamong/class-recoreder-v2/app/models"
)

// SheetRow is one editable line of the attendance sheet: a roster student
// with the status and notes the form should show.
type SheetRow struct {
	StudentID     string                  `json:"student_id"`
	StudentNumber string                  `json:"student_number"`
	Name          string                  `json:"name"`
	Status        models.AttendanceStatus `json:"status"`
	Notes         string                  `json:"notes"`
}

// EntryInput is one submitted {status, notes} pair of the batch form.
type EntryInput struct {
	StudentID string                  `json:"student_id"`
	Status    models.AttendanceStatus `json:"status"`
	Notes     string                  `json:"notes"`
}

func indexByStudent(records []*models.AttendanceRecord) map[string]*models.AttendanceRecord {
	byStudent := make(map[string]*models.AttendanceRecord, len(records))
	for _, r := range records {
		byStudent[r.StudentID] = r
	}
	return byStudent
}

// BuildSheet produces one row per roster student, pre-filled from the
// matching existing record when present, else status "present" and empty
// notes.
func BuildSheet(students []*models.Student, existing []*models.AttendanceRecord) []SheetRow {
	byStudent := indexByStudent(existing)
	rows := make([]SheetRow, 0, len(students))
	for _, st := range students {
		row := SheetRow{
			StudentID:     st.ID,
			StudentNumber: st.StudentNumber,
			Name:          st.Name,
			Status:        models.Present,
		}
		if record, ok := byStudent[st.ID]; ok {
			row.Status = record.Status
			row.Notes = record.Notes
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildReconcilePlan turns a batch submission into the records to upsert:
// exactly one per roster student. A student present in the submission
// takes the submitted status and notes; one missing from it keeps the
// existing record's values when there is one, and falls back to the
// defaults otherwise. Submitted entries for students no longer on the
// roster are ignored.
func BuildReconcilePlan(classID, date string, students []*models.Student, existing []*models.AttendanceRecord, inputs []EntryInput) []*models.AttendanceRecord {
	byStudent := indexByStudent(existing)
	submitted := make(map[string]EntryInput, len(inputs))
	for _, in := range inputs {
		submitted[in.StudentID] = in
	}

	records := make([]*models.AttendanceRecord, 0, len(students))
	for _, st := range students {
		record := &models.AttendanceRecord{
			ClassID:       classID,
			StudentID:     st.ID,
			StudentNumber: st.StudentNumber,
			StudentName:   st.Name,
			Date:          date,
			Status:        models.Present,
		}
		if prior, ok := byStudent[st.ID]; ok {
			record.Status = prior.Status
			record.Notes = prior.Notes
		}
		if in, ok := submitted[st.ID]; ok {
			// An entry without a status keeps the form default.
			if in.Status != "" {
				record.Status = in.Status
			}
			record.Notes = in.Notes
		}
		records = append(records, record)
	}
	return records
}
