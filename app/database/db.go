package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/vitamong/class-recoreder-v2/app/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

type CourseStore interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id string) error
}

type ClassStore interface {
	ListClasses(ctx context.Context) ([]*models.Class, error)
	GetClass(ctx context.Context, id string) (*models.Class, error)
	CreateClass(ctx context.Context, class *models.Class) error
	UpdateClass(ctx context.Context, class *models.Class) error
	DeleteClass(ctx context.Context, id string) error
}

type StudentStore interface {
	ListStudents(ctx context.Context, classID string) ([]*models.Student, error)
	GetStudent(ctx context.Context, classID, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, classID string, student *models.Student) error
	// CreateStudents commits every student in one all-or-nothing batch.
	CreateStudents(ctx context.Context, classID string, students []*models.Student) error
	UpdateStudent(ctx context.Context, classID string, student *models.Student) error
	DeleteStudent(ctx context.Context, classID, id string) error
}

type ProgressStore interface {
	ListProgressByDate(ctx context.Context, classID, date string) ([]*models.ProgressEntry, error)
	ListProgress(ctx context.Context, classID string) ([]*models.ProgressEntry, error)
	GetProgressEntry(ctx context.Context, classID, id string) (*models.ProgressEntry, error)
	CreateProgressEntry(ctx context.Context, classID string, entry *models.ProgressEntry) error
	UpdateProgressEntry(ctx context.Context, classID string, entry *models.ProgressEntry) error
	DeleteProgressEntry(ctx context.Context, classID, id string) error
}

type AttendanceStore interface {
	ListAttendanceByClassAndDate(ctx context.Context, classID, date string) ([]*models.AttendanceRecord, error)
	ListAttendance(ctx context.Context) ([]*models.AttendanceRecord, error)
	// UpsertAttendance writes every record in one all-or-nothing batch,
	// keyed by (class_id, student_id, date) so each key holds at most
	// one record regardless of concurrent submissions.
	UpsertAttendance(ctx context.Context, records []*models.AttendanceRecord) error
}

// Stores bundles every store interface for route registration.
type Stores struct {
	Courses    CourseStore
	Classes    ClassStore
	Students   StudentStore
	Progress   ProgressStore
	Attendance AttendanceStore
}

// AttendanceDocID derives the attendance document ID from its logical key.
// Writing through this ID makes the upsert a single keyed set instead of a
// racy existence-check-then-insert.
func AttendanceDocID(classID, studentID, date string) string {
	return fmt.Sprintf("%s_%s_%s", classID, studentID, date)
}

// FirestoreStore implements every store interface over one Firestore client.
type FirestoreStore struct {
	client *firestore.Client
}

var (
	_ CourseStore     = (*FirestoreStore)(nil)
	_ ClassStore      = (*FirestoreStore)(nil)
	_ StudentStore    = (*FirestoreStore)(nil)
	_ ProgressStore   = (*FirestoreStore)(nil)
	_ AttendanceStore = (*FirestoreStore)(nil)
)

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Stores exposes the Firestore store under every interface.
func (s *FirestoreStore) Stores() Stores {
	return Stores{
		Courses:    s,
		Classes:    s,
		Students:   s,
		Progress:   s,
		Attendance: s,
	}
}
