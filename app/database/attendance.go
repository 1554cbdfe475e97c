package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/vitamong/class-recoreder-v2/app/models"
)

const attendanceCollection = "attendance"

func (s *FirestoreStore) attendance() *firestore.CollectionRef {
	return s.client.Collection(attendanceCollection)
}

func (s *FirestoreStore) collectAttendance(iter *firestore.DocumentIterator) ([]*models.AttendanceRecord, error) {
	defer iter.Stop()

	var records []*models.AttendanceRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list attendance: %w", err)
		}
		record := &models.AttendanceRecord{}
		if err := doc.DataTo(record); err != nil {
			return nil, fmt.Errorf("decode attendance record %s: %w", doc.Ref.ID, err)
		}
		record.ID = doc.Ref.ID
		records = append(records, record)
	}
	return records, nil
}

func (s *FirestoreStore) ListAttendanceByClassAndDate(ctx context.Context, classID, date string) ([]*models.AttendanceRecord, error) {
	iter := s.attendance().
		Where("class_id", "==", classID).
		Where("date", "==", date).
		Documents(ctx)
	return s.collectAttendance(iter)
}

// ListAttendance returns the whole attendance collection, used by the
// backup exporter.
func (s *FirestoreStore) ListAttendance(ctx context.Context) ([]*models.AttendanceRecord, error) {
	return s.collectAttendance(s.attendance().Documents(ctx))
}

// UpsertAttendance writes every record under its key-derived document ID
// in a single batch. A record that already exists for the key is
// overwritten in place; the batch either commits fully or not at all.
func (s *FirestoreStore) UpsertAttendance(ctx context.Context, records []*models.AttendanceRecord) error {
	batch := s.client.Batch()
	now := time.Now().UTC()
	for _, record := range records {
		record.ID = AttendanceDocID(record.ClassID, record.StudentID, record.Date)
		record.LastUpdatedAt = now
		batch.Set(s.attendance().Doc(record.ID), record)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("batch upsert %d attendance records: %w", len(records), err)
	}
	return nil
}
