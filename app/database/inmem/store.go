// Package inmem provides an in-memory implementation of the database
// store interfaces. It mirrors the ordering and batch semantics of the
// Firestore store and backs the handler tests.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vitamong/class-recoreder-v2/app/database"
	"github.com/vitamong/class-recoreder-v2/app/models"
)

type Store struct {
	mu         sync.RWMutex
	courses    map[string]*models.Course
	classes    map[string]*models.Class
	students   map[string]map[string]*models.Student       // classID -> id -> student
	progress   map[string]map[string]*models.ProgressEntry // classID -> id -> entry
	attendance map[string]*models.AttendanceRecord
}

var (
	_ database.CourseStore     = (*Store)(nil)
	_ database.ClassStore      = (*Store)(nil)
	_ database.StudentStore    = (*Store)(nil)
	_ database.ProgressStore   = (*Store)(nil)
	_ database.AttendanceStore = (*Store)(nil)
)

func Open() *Store {
	return &Store{
		courses:    make(map[string]*models.Course),
		classes:    make(map[string]*models.Class),
		students:   make(map[string]map[string]*models.Student),
		progress:   make(map[string]map[string]*models.ProgressEntry),
		attendance: make(map[string]*models.AttendanceRecord),
	}
}

// Stores exposes the in-memory store under every interface.
func (s *Store) Stores() database.Stores {
	return database.Stores{
		Courses:    s,
		Classes:    s,
		Students:   s,
		Progress:   s,
		Attendance: s,
	}
}

func (s *Store) ListCourses(ctx context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]*models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		cp := *c
		courses = append(courses, &cp)
	}
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].Year != courses[j].Year {
			return courses[i].Year > courses[j].Year
		}
		return courses[i].Semester > courses[j].Semester
	})
	return courses, nil
}

func (s *Store) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (s *Store) CreateCourse(ctx context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	course.ID = uuid.NewString()
	course.CreatedAt = time.Now().UTC()
	cp := *course
	s.courses[course.ID] = &cp
	return nil
}

func (s *Store) UpdateCourse(ctx context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *course
	s.courses[course.ID] = &cp
	return nil
}

func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.courses, id)
	return nil
}

func (s *Store) ListClasses(ctx context.Context) ([]*models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	classes := make([]*models.Class, 0, len(s.classes))
	for _, c := range s.classes {
		cp := *c
		classes = append(classes, &cp)
	}
	sort.SliceStable(classes, func(i, j int) bool {
		if classes[i].Year != classes[j].Year {
			return classes[i].Year > classes[j].Year
		}
		return classes[i].Semester > classes[j].Semester
	})
	return classes, nil
}

func (s *Store) GetClass(ctx context.Context, id string) (*models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.classes[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (s *Store) CreateClass(ctx context.Context, class *models.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	class.ID = uuid.NewString()
	class.CreatedAt = time.Now().UTC()
	cp := *class
	s.classes[class.ID] = &cp
	return nil
}

func (s *Store) UpdateClass(ctx context.Context, class *models.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *class
	s.classes[class.ID] = &cp
	return nil
}

func (s *Store) DeleteClass(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.classes, id)
	return nil
}

func (s *Store) roster(classID string) map[string]*models.Student {
	if s.students[classID] == nil {
		s.students[classID] = make(map[string]*models.Student)
	}
	return s.students[classID]
}

func (s *Store) ListStudents(ctx context.Context, classID string) ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]*models.Student, 0, len(s.students[classID]))
	for _, st := range s.students[classID] {
		cp := *st
		students = append(students, &cp)
	}
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].StudentNumber < students[j].StudentNumber
	})
	return students, nil
}

func (s *Store) GetStudent(ctx context.Context, classID, id string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.students[classID][id]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (s *Store) CreateStudent(ctx context.Context, classID string, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student.ID = uuid.NewString()
	student.CreatedAt = time.Now().UTC()
	cp := *student
	s.roster(classID)[student.ID] = &cp
	return nil
}

func (s *Store) CreateStudents(ctx context.Context, classID string, students []*models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, student := range students {
		student.ID = uuid.NewString()
		student.CreatedAt = now
		cp := *student
		s.roster(classID)[student.ID] = &cp
	}
	return nil
}

func (s *Store) UpdateStudent(ctx context.Context, classID string, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *student
	s.roster(classID)[student.ID] = &cp
	return nil
}

func (s *Store) DeleteStudent(ctx context.Context, classID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.students[classID], id)
	return nil
}

func (s *Store) logbook(classID string) map[string]*models.ProgressEntry {
	if s.progress[classID] == nil {
		s.progress[classID] = make(map[string]*models.ProgressEntry)
	}
	return s.progress[classID]
}

func (s *Store) ListProgressByDate(ctx context.Context, classID, date string) ([]*models.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*models.ProgressEntry
	for _, e := range s.progress[classID] {
		if e.Date == date {
			cp := *e
			entries = append(entries, &cp)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Period < entries[j].Period
	})
	return entries, nil
}

func (s *Store) ListProgress(ctx context.Context, classID string) ([]*models.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*models.ProgressEntry, 0, len(s.progress[classID]))
	for _, e := range s.progress[classID] {
		cp := *e
		entries = append(entries, &cp)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Period < entries[j].Period
	})
	return entries, nil
}

func (s *Store) GetProgressEntry(ctx context.Context, classID, id string) (*models.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.progress[classID][id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (s *Store) CreateProgressEntry(ctx context.Context, classID string, entry *models.ProgressEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	cp := *entry
	s.logbook(classID)[entry.ID] = &cp
	return nil
}

func (s *Store) UpdateProgressEntry(ctx context.Context, classID string, entry *models.ProgressEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *entry
	s.logbook(classID)[entry.ID] = &cp
	return nil
}

func (s *Store) DeleteProgressEntry(ctx context.Context, classID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.progress[classID], id)
	return nil
}

func (s *Store) ListAttendanceByClassAndDate(ctx context.Context, classID, date string) ([]*models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*models.AttendanceRecord
	for _, r := range s.attendance {
		if r.ClassID == classID && r.Date == date {
			cp := *r
			records = append(records, &cp)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StudentNumber < records[j].StudentNumber
	})
	return records, nil
}

func (s *Store) ListAttendance(ctx context.Context) ([]*models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.AttendanceRecord, 0, len(s.attendance))
	for _, r := range s.attendance {
		cp := *r
		records = append(records, &cp)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].StudentNumber < records[j].StudentNumber
	})
	return records, nil
}

func (s *Store) UpsertAttendance(ctx context.Context, records []*models.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, record := range records {
		record.ID = database.AttendanceDocID(record.ClassID, record.StudentID, record.Date)
		record.LastUpdatedAt = now
		cp := *record
		s.attendance[record.ID] = &cp
	}
	return nil
}
