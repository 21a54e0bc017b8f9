package records

import "time"

// FileRecordResponse is the outward-facing representation of a record.
type FileRecordResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Content    string    `json:"content"`
	Category   string    `json:"category,omitempty"`
	Format     string    `json:"format"`
	Recognized bool      `json:"recognized"`
	SizeBytes  int64     `json:"sizeBytes"`
	StorageKey string    `json:"storageKey,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toResponse(rec FileRecord) FileRecordResponse {
	return FileRecordResponse{
		ID:         rec.ID,
		Filename:   rec.FileName,
		Content:    rec.Content,
		Category:   rec.Category,
		Format:     rec.Format,
		Recognized: rec.Recognized,
		SizeBytes:  rec.SizeBytes,
		StorageKey: rec.StorageKey,
		UploadedAt: rec.UploadedAt,
	}
}
