package models

import (
	"time"
)

type Game struct {
	ID          int64     `json:"id"`           // Primary key
	ShortCode   string    `json:"short_code"`   // Public 6-char join code, unique
	NumHoles    int       `json:"num_holes"`    // Holes in play, grows via add-hole
	CurrentHole int       `json:"current_hole"` // Active hole, never exceeds NumHoles
	CreatedAt   time.Time `json:"created_at"`   // Timestamp
}
