package records

import "time"

// FileRecord is a persisted medical document owned by a principal: the
// original file lives in object storage, the extracted text lives here.
type FileRecord struct {
	ID         string
	UserID     string
	FileName   string
	Content    string
	Category   string
	Format     string
	Recognized bool
	SizeBytes  int64
	StorageKey string
	UploadedAt time.Time
}
