package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vitamong/class-recoreder-v2/app/models"
)

const studentsCollection = "students"

func (s *FirestoreStore) students(classID string) *firestore.CollectionRef {
	return s.classes().Doc(classID).Collection(studentsCollection)
}

// ListStudents returns a class roster ordered by student_number ascending.
// The ordering is lexicographic on the stored string.
func (s *FirestoreStore) ListStudents(ctx context.Context, classID string) ([]*models.Student, error) {
	iter := s.students(classID).
		OrderBy("student_number", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var students []*models.Student
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list students of class %s: %w", classID, err)
		}
		student := &models.Student{}
		if err := doc.DataTo(student); err != nil {
			return nil, fmt.Errorf("decode student %s: %w", doc.Ref.ID, err)
		}
		student.ID = doc.Ref.ID
		students = append(students, student)
	}
	return students, nil
}

func (s *FirestoreStore) GetStudent(ctx context.Context, classID, id string) (*models.Student, error) {
	doc, err := s.students(classID).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student %s: %w", id, err)
	}
	student := &models.Student{}
	if err := doc.DataTo(student); err != nil {
		return nil, fmt.Errorf("decode student %s: %w", id, err)
	}
	student.ID = doc.Ref.ID
	return student, nil
}

func (s *FirestoreStore) CreateStudent(ctx context.Context, classID string, student *models.Student) error {
	ref := s.students(classID).NewDoc()
	student.ID = ref.ID
	student.CreatedAt = time.Now().UTC()
	if _, err := ref.Set(ctx, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// CreateStudents writes the whole list in a single batch; either every
// student is created or none is.
func (s *FirestoreStore) CreateStudents(ctx context.Context, classID string, students []*models.Student) error {
	batch := s.client.Batch()
	now := time.Now().UTC()
	for _, student := range students {
		ref := s.students(classID).NewDoc()
		student.ID = ref.ID
		student.CreatedAt = now
		batch.Set(ref, student)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("batch create %d students: %w", len(students), err)
	}
	return nil
}

func (s *FirestoreStore) UpdateStudent(ctx context.Context, classID string, student *models.Student) error {
	if _, err := s.students(classID).Doc(student.ID).Set(ctx, student); err != nil {
		return fmt.Errorf("update student %s: %w", student.ID, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteStudent(ctx context.Context, classID, id string) error {
	if _, err := s.students(classID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete student %s: %w", id, err)
	}
	return nil
}
