package models

import (
	"time"
)

// Score holds one player's strokes for one hole. At most one row exists
// per (player, hole), enforced by a unique constraint and upsert writes.
type Score struct {
	ID         int64     `json:"id"`          // Primary key
	PlayerID   int64     `json:"player_id"`   // Foreign key to Players
	GameID     int64     `json:"game_id"`     // Foreign key to Games
	HoleNumber int       `json:"hole_number"` // 1..Game.NumHoles
	Score      int       `json:"score"`       // Strokes, 1..MAX_SHOTS
	CreatedAt  time.Time `json:"created_at"`  // Timestamp
}
