package comm

import (
	"encoding/json"
	"time"

	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
)

// Event is the framing for messages pushed down a live update channel.
type Event struct {
	Event string          `json:"event"` // "connected", "heartbeat", "game:update"
	Data  json.RawMessage `json:"data"`
}

// GameView is the full recomputed state of one game, pushed to every
// subscriber after each mutation and returned by the get-game endpoint.
type GameView struct {
	Game       models.Game       `json:"game"`
	Players    []*models.Player  `json:"players"`
	Scores     []*models.Score   `json:"scores"`
	Scoreboard []ScoreboardEntry `json:"scoreboard"`
	// HoleComplete reports whether every player has a score recorded
	// for the current hole.
	HoleComplete bool `json:"hole_complete"`
}

// ScoreboardEntry is one ranked row of the shared scoreboard.
type ScoreboardEntry struct {
	Player      *models.Player `json:"player"`
	TotalScore  int            `json:"total_score"`
	HolesPlayed int            `json:"holes_played"`
	Rank        int            `json:"rank"`
}

// GameUpdate is the payload of a "game:update" event. Type identifies the
// mutation class that triggered the refresh.
type GameUpdate struct {
	Type     string   `json:"type"` // "playerAdded", "score", "hole", "player"
	GameCode string   `json:"gameCode"`
	Data     GameView `json:"data"`
}

type ConnectedAck struct {
	Status string `json:"status"`
}

type Heartbeat struct {
	Time time.Time `json:"time"`
}
