package records

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"medvault-backend/internal/extract"
	"medvault-backend/internal/shared/storage/object"
)

// Service contains business logic for file records.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload buffers the file, stores the original, extracts its text and
// persists a record. An extraction failure aborts the insert; the stored
// original is retained for later inspection.
func (s *Service) Upload(ctx context.Context, userID, fileName, category string, r io.Reader) (FileRecord, error) {
	if fileName == "" {
		return FileRecord{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return FileRecord{}, fmt.Errorf("read upload: %w", err)
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return FileRecord{}, fmt.Errorf("store upload: %w", err)
	}

	res, err := extract.Extract(ctx, fileName, data)
	if err != nil {
		return FileRecord{}, err
	}

	rec := FileRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		Content:    res.Text,
		Category:   category,
		Format:     res.Format,
		Recognized: res.Recognized,
		SizeBytes:  size,
		StorageKey: storageKey,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return FileRecord{}, fmt.Errorf("persist record: %w", err)
	}

	return rec, nil
}

// List returns all records for the principal, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]FileRecord, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes a record by id. The stored original stays on disk.
func (s *Service) Delete(ctx context.Context, userID, recordID string) error {
	if userID == "" || recordID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, recordID)
}
