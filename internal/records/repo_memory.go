package records

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]FileRecord // userID -> records
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]FileRecord),
	}
}

// Create stores a record for a user.
func (r *MemoryRepo) Create(ctx context.Context, rec FileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.UserID] = append(r.data[rec.UserID], rec)
	return nil
}

// ListByUser returns records for a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	userRecs := r.data[userID]
	r.mu.RUnlock()

	// Reversed before the stable sort so equal timestamps keep the most
	// recently created record first.
	recs := make([]FileRecord, len(userRecs))
	for i, rec := range userRecs {
		recs[len(userRecs)-1-i] = rec
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].UploadedAt.After(recs[j].UploadedAt)
	})
	return recs, nil
}

// GetByID returns a record by id for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, recordID string) (FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return FileRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.data[userID] {
		if rec.ID == recordID {
			return rec, nil
		}
	}
	return FileRecord{}, ErrNotFound
}

// Delete removes a record by id for a user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.data[userID]
	for i := range recs {
		if recs[i].ID == recordID {
			r.data[userID] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
