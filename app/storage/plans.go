// Package storage handles the lesson plan PDF blobs attached to courses.
package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// MaxPlanSize is the upload limit for lesson plan PDFs.
const MaxPlanSize = 10 << 20 // 10MB

// PlanStore uploads and deletes lesson plan PDFs. Upload returns the
// public URL and the object path recorded on the course; Delete removes
// the blob at a previously recorded path.
type PlanStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (url, path string, err error)
	Delete(ctx context.Context, path string) error
}

// PlanObjectPath builds the object name for an uploaded plan, keeping the
// original filename behind a generated prefix.
func PlanObjectPath(filename string) string {
	return fmt.Sprintf("plans/%s_%s", uuid.NewString(), filename)
}

// BucketPlanStore stores plans in a Cloud Storage bucket and makes each
// uploaded object publicly readable.
type BucketPlanStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

var _ PlanStore = (*BucketPlanStore)(nil)

func NewBucketPlanStore(bucket *gcs.BucketHandle, bucketName string) *BucketPlanStore {
	return &BucketPlanStore{bucket: bucket, bucketName: bucketName}
}

func (s *BucketPlanStore) Upload(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	path := PlanObjectPath(filename)
	obj := s.bucket.Object(path)

	w := obj.NewWriter(ctx)
	w.ContentType = "application/pdf"
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", "", fmt.Errorf("upload plan %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", "", fmt.Errorf("upload plan %s: %w", path, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", "", fmt.Errorf("publish plan %s: %w", path, err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, path)
	return url, path, nil
}

func (s *BucketPlanStore) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	err := s.bucket.Object(path).Delete(ctx)
	if err == gcs.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", path, err)
	}
	return nil
}
