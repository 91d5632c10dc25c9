package service

import (
	"context"

	"github.com/avvvet/minigolf-services/internal/comm"
	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
)

// Store interfaces let the services run against the pgx-backed stores in
// production and in-memory fakes in tests.

type GameStore interface {
	CreateGame(ctx context.Context, shortCode string) (*models.Game, error)
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	GetGameByCode(ctx context.Context, shortCode string) (*models.Game, error)
	AddHole(ctx context.Context, gameID int64) (*models.Game, error)
	SetCurrentHole(ctx context.Context, gameID int64, holeNumber int) (*models.Game, error)
}

type PlayerStore interface {
	CreatePlayer(ctx context.Context, gameID int64, name, ballColor string) (*models.Player, error)
	GetPlayerInGame(ctx context.Context, playerID, gameID int64) (*models.Player, error)
	GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, playerID, gameID int64, name, ballColor string) (*models.Player, error)
}

type ScoreStore interface {
	UpsertScore(ctx context.Context, playerID, gameID int64, holeNumber, score int) (*models.Score, error)
	GetScoresByGameID(ctx context.Context, gameID int64) ([]*models.Score, error)
	GetScoresForHole(ctx context.Context, gameID int64, holeNumber int) ([]*models.Score, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Notifier receives the recomputed game view after a successful mutation.
// Delivery is fire-and-forget: implementations log failures and never
// surface them to the mutation path.
type Notifier interface {
	GameUpdated(ctx context.Context, update comm.GameUpdate)
}

// NopNotifier discards updates. Used when no broker is wired, and in tests.
type NopNotifier struct{}

func (NopNotifier) GameUpdated(ctx context.Context, update comm.GameUpdate) {}
