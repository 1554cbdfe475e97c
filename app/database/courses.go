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

const coursesCollection = "courses"

func (s *FirestoreStore) courses() *firestore.CollectionRef {
	return s.client.Collection(coursesCollection)
}

// ListCourses returns all courses ordered by year descending, then
// semester descending.
func (s *FirestoreStore) ListCourses(ctx context.Context) ([]*models.Course, error) {
	iter := s.courses().
		OrderBy("year", firestore.Desc).
		OrderBy("semester", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var courses []*models.Course
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		course := &models.Course{}
		if err := doc.DataTo(course); err != nil {
			return nil, fmt.Errorf("decode course %s: %w", doc.Ref.ID, err)
		}
		course.ID = doc.Ref.ID
		courses = append(courses, course)
	}
	return courses, nil
}

func (s *FirestoreStore) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	doc, err := s.courses().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", id, err)
	}
	course := &models.Course{}
	if err := doc.DataTo(course); err != nil {
		return nil, fmt.Errorf("decode course %s: %w", id, err)
	}
	course.ID = doc.Ref.ID
	return course, nil
}

func (s *FirestoreStore) CreateCourse(ctx context.Context, course *models.Course) error {
	ref := s.courses().NewDoc()
	course.ID = ref.ID
	course.CreatedAt = time.Now().UTC()
	if _, err := ref.Set(ctx, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// UpdateCourse overwrites every field of the course document. The caller
// is expected to carry over CreatedAt from the existing document.
func (s *FirestoreStore) UpdateCourse(ctx context.Context, course *models.Course) error {
	if _, err := s.courses().Doc(course.ID).Set(ctx, course); err != nil {
		return fmt.Errorf("update course %s: %w", course.ID, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteCourse(ctx context.Context, id string) error {
	if _, err := s.courses().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	return nil
}
