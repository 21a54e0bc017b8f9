package users

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the backend.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
