package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SanitizedUser is the only projection of a user that leaves the service.
// It never carries the password hash.
type SanitizedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u User) Sanitize() SanitizedUser {
	return SanitizedUser{ID: u.ID, Username: u.Username}
}
