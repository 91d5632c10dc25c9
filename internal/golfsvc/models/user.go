package models

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`       // Primary key
	Username     string    `json:"username"` // Unique login name
	PasswordHash string    `json:"-"`        // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
}
