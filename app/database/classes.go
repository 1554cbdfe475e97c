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

const classesCollection = "classes"

func (s *FirestoreStore) classes() *firestore.CollectionRef {
	return s.client.Collection(classesCollection)
}

// ListClasses returns all classes ordered by year descending, then
// semester descending.
func (s *FirestoreStore) ListClasses(ctx context.Context) ([]*models.Class, error) {
	iter := s.classes().
		OrderBy("year", firestore.Desc).
		OrderBy("semester", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var classes []*models.Class
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list classes: %w", err)
		}
		class := &models.Class{}
		if err := doc.DataTo(class); err != nil {
			return nil, fmt.Errorf("decode class %s: %w", doc.Ref.ID, err)
		}
		class.ID = doc.Ref.ID
		classes = append(classes, class)
	}
	return classes, nil
}

func (s *FirestoreStore) GetClass(ctx context.Context, id string) (*models.Class, error) {
	doc, err := s.classes().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get class %s: %w", id, err)
	}
	class := &models.Class{}
	if err := doc.DataTo(class); err != nil {
		return nil, fmt.Errorf("decode class %s: %w", id, err)
	}
	class.ID = doc.Ref.ID
	return class, nil
}

func (s *FirestoreStore) CreateClass(ctx context.Context, class *models.Class) error {
	ref := s.classes().NewDoc()
	class.ID = ref.ID
	class.CreatedAt = time.Now().UTC()
	if _, err := ref.Set(ctx, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

func (s *FirestoreStore) UpdateClass(ctx context.Context, class *models.Class) error {
	if _, err := s.classes().Doc(class.ID).Set(ctx, class); err != nil {
		return fmt.Errorf("update class %s: %w", class.ID, err)
	}
	return nil
}

// DeleteClass removes the class document only; students, progress and
// attendance that reference it are left in place.
func (s *FirestoreStore) DeleteClass(ctx context.Context, id string) error {
	if _, err := s.classes().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete class %s: %w", id, err)
	}
	return nil
}
