package records

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new file record.
func (r *PGRepo) Create(ctx context.Context, rec FileRecord) error {
	const query = `
INSERT INTO file_records (
    id,
    user_id,
    file_name,
    content,
    category,
    format,
    recognized,
    size_bytes,
    storage_key,
    uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var category sql.NullString
	if rec.Category != "" {
		category = sql.NullString{String: rec.Category, Valid: true}
	}
	var storageKey sql.NullString
	if rec.StorageKey != "" {
		storageKey = sql.NullString{String: rec.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.FileName,
		rec.Content,
		category,
		rec.Format,
		rec.Recognized,
		rec.SizeBytes,
		storageKey,
		rec.UploadedAt,
	)
	return err
}

// ListByUser returns all records for the user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]FileRecord, error) {
	const query = `
SELECT id, user_id, file_name, content, category, format, recognized, size_bytes, storage_key, uploaded_at
FROM file_records
WHERE user_id = $1
ORDER BY uploaded_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetByID fetches a record by id for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, recordID string) (FileRecord, error) {
	const query = `
SELECT id, user_id, file_name, content, category, format, recognized, size_bytes, storage_key, uploaded_at
FROM file_records
WHERE user_id = $1 AND id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, userID, recordID)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FileRecord{}, ErrNotFound
		}
		return FileRecord{}, err
	}
	return rec, nil
}

// Delete removes a record by id. The stored original is retained on purpose.
func (r *PGRepo) Delete(ctx context.Context, userID, recordID string) error {
	const query = `
DELETE FROM file_records
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, recordID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (FileRecord, error) {
	var rec FileRecord
	var category sql.NullString
	var storageKey sql.NullString
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.FileName,
		&rec.Content,
		&category,
		&rec.Format,
		&rec.Recognized,
		&rec.SizeBytes,
		&storageKey,
		&rec.UploadedAt,
	); err != nil {
		return FileRecord{}, err
	}
	if category.Valid {
		rec.Category = category.String
	}
	if storageKey.Valid {
		rec.StorageKey = storageKey.String
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
