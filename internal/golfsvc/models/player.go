package models

import (
	"time"
)

type Player struct {
	ID        int64     `json:"id"`         // Primary key
	GameID    int64     `json:"game_id"`    // Foreign key to Games
	Name      string    `json:"name"`       // Display name, 1-50 chars trimmed
	BallColor string    `json:"ball_color"` // Hex RGB like #FF0000
	CreatedAt time.Time `json:"created_at"` // Timestamp
}
