package models

import "time"

// User captures a registered account. The password hash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the decoded token payload carried through an authenticated
// request. It is a snapshot taken at issuance, not a live reference to the
// users table.
type Identity struct {
	UserID   int64
	Username string
}
