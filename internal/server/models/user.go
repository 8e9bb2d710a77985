package models

import "time"

// User is a credential record. Email is the unique key; PasswordHash is a
// bcrypt hash and the plaintext is never kept.
type User struct {
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
