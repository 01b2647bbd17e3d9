package models

import "time"

// Host is an account allowed to change boards. Reading boards needs no account.
type Host struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
