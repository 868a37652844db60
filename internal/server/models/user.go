package models

import "time"

// User is a registered account. PasswordHash is an opaque credential
// produced by the auth package; plaintext is never stored.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Permission   Permission
	CreatedAt    time.Time
}
