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

const progressCollection = "progress"

func (s *FirestoreStore) progress(classID string) *firestore.CollectionRef {
	return s.classes().Doc(classID).Collection(progressCollection)
}

func (s *FirestoreStore) collectProgress(iter *firestore.DocumentIterator) ([]*models.ProgressEntry, error) {
	defer iter.Stop()

	var entries []*models.ProgressEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list progress: %w", err)
		}
		entry := &models.ProgressEntry{}
		if err := doc.DataTo(entry); err != nil {
			return nil, fmt.Errorf("decode progress entry %s: %w", doc.Ref.ID, err)
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListProgressByDate returns entries matching the exact date, ordered by
// period ascending.
func (s *FirestoreStore) ListProgressByDate(ctx context.Context, classID, date string) ([]*models.ProgressEntry, error) {
	iter := s.progress(classID).
		Where("date", "==", date).
		OrderBy("period", firestore.Asc).
		Documents(ctx)
	return s.collectProgress(iter)
}

// ListProgress returns every progress entry of a class, used by the
// backup exporter.
func (s *FirestoreStore) ListProgress(ctx context.Context, classID string) ([]*models.ProgressEntry, error) {
	return s.collectProgress(s.progress(classID).Documents(ctx))
}

func (s *FirestoreStore) GetProgressEntry(ctx context.Context, classID, id string) (*models.ProgressEntry, error) {
	doc, err := s.progress(classID).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get progress entry %s: %w", id, err)
	}
	entry := &models.ProgressEntry{}
	if err := doc.DataTo(entry); err != nil {
		return nil, fmt.Errorf("decode progress entry %s: %w", id, err)
	}
	entry.ID = doc.Ref.ID
	return entry, nil
}

func (s *FirestoreStore) CreateProgressEntry(ctx context.Context, classID string, entry *models.ProgressEntry) error {
	ref := s.progress(classID).NewDoc()
	entry.ID = ref.ID
	entry.CreatedAt = time.Now().UTC()
	if _, err := ref.Set(ctx, entry); err != nil {
		return fmt.Errorf("create progress entry: %w", err)
	}
	return nil
}

func (s *FirestoreStore) UpdateProgressEntry(ctx context.Context, classID string, entry *models.ProgressEntry) error {
	if _, err := s.progress(classID).Doc(entry.ID).Set(ctx, entry); err != nil {
		return fmt.Errorf("update progress entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteProgressEntry(ctx context.Context, classID, id string) error {
	if _, err := s.progress(classID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete progress entry %s: %w", id, err)
	}
	return nil
}
