package records

import "context"

// Repo defines persistence operations for file records.
type Repo interface {
	Create(ctx context.Context, rec FileRecord) error
	ListByUser(ctx context.Context, userID string) ([]FileRecord, error)
	GetByID(ctx context.Context, userID, recordID string) (FileRecord, error)
	Delete(ctx context.Context, userID, recordID string) error
}
