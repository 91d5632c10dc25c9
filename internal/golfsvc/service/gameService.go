package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/avvvet/minigolf-services/internal/comm"
	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
	"github.com/avvvet/minigolf-services/internal/golfsvc/store"
	log "github.com/sirupsen/logrus"
)

const (
	shortCodeChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shortCodeLen        = 6
	maxCodeAttempts     = 10
	mutationScore       = "score"
	mutationHole        = "hole"
	mutationPlayer      = "player"
	mutationPlayerAdded = "playerAdded"
)

type GameService struct {
	gameStore   GameStore
	playerStore PlayerStore
	scoreStore  ScoreStore
	notifier    Notifier
}

func NewGameService(gameStore GameStore, playerStore PlayerStore, scoreStore ScoreStore, notifier Notifier) *GameService {
	return &GameService{
		gameStore:   gameStore,
		playerStore: playerStore,
		scoreStore:  scoreStore,
		notifier:    notifier,
	}
}

func generateShortCode() string {
	b := make([]byte, shortCodeLen)
	for i := range b {
		b[i] = shortCodeChars[rand.Intn(len(shortCodeChars))]
	}
	return string(b)
}

// CreateGame starts a game with one hole and a fresh short code. The code
// uniqueness is enforced by the store; collisions are retried up to the
// attempt budget before giving up with a ConflictError.
func (s *GameService) CreateGame(ctx context.Context) (*models.Game, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		game, err := s.gameStore.CreateGame(ctx, generateShortCode())
		if err != nil {
			if errors.Is(err, store.ErrShortCodeTaken) {
				continue
			}
			return nil, err
		}
		return game, nil
	}

	return nil, &ConflictError{Msg: "failed to generate unique short code"}
}

// GameViewByCode loads the full recomputed state for a game: entities plus
// the ranked scoreboard and the frontier completion flag.
func (s *GameService) GameViewByCode(ctx context.Context, shortCode string) (*comm.GameView, error) {
	if shortCode == "" {
		return nil, validationf("game code is required")
	}

	game, err := s.gameStore.GetGameByCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &NotFoundError{Resource: "game"}
	}

	return s.buildView(ctx, game)
}

func (s *GameService) GameViewByID(ctx context.Context, gameID int64) (*comm.GameView, error) {
	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &NotFoundError{Resource: "game"}
	}

	return s.buildView(ctx, game)
}

func (s *GameService) buildView(ctx context.Context, game *models.Game) (*comm.GameView, error) {
	players, err := s.playerStore.GetPlayersByGameID(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	scores, err := s.scoreStore.GetScoresByGameID(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return &comm.GameView{
		Game:         *game,
		Players:      players,
		Scores:       scores,
		Scoreboard:   BuildScoreboard(*game, players, scores),
		HoleComplete: HoleComplete(players, scores, game.CurrentHole),
	}, nil
}

// AddHole appends a hole at the frontier and auto-advances the current hole
// to it. Holes are never inserted mid-sequence.
func (s *GameService) AddHole(ctx context.Context, gameID int64) (*models.Game, error) {
	if gameID <= 0 {
		return nil, validationf("invalid game ID: %d", gameID)
	}

	game, err := s.gameStore.AddHole(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &NotFoundError{Resource: "game"}
	}

	s.notifyUpdate(ctx, game, mutationHole)
	return game, nil
}

// UpdateCurrentHole moves the active hole on explicit request. The server
// never advances on hole completion; completion is a read the client acts
// on, which keeps concurrent last-player submissions race free.
func (s *GameService) UpdateCurrentHole(ctx context.Context, gameID int64, holeNumber int) (*models.Game, error) {
	if gameID <= 0 {
		return nil, validationf("invalid game ID: %d", gameID)
	}
	if holeNumber <= 0 {
		return nil, validationf("invalid hole number: %d", holeNumber)
	}

	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &NotFoundError{Resource: "game"}
	}
	if holeNumber > game.NumHoles {
		return nil, validationf("hole number %d does not exist in this game", holeNumber)
	}

	game, err = s.gameStore.SetCurrentHole(ctx, gameID, holeNumber)
	if err != nil {
		return nil, err
	}
	if game == nil {
		// lost a race with a concurrent add-hole/advance; the guard in
		// the store kept current_hole within bounds
		return nil, validationf("hole number %d does not exist in this game", holeNumber)
	}

	return game, nil
}

// notifyUpdate pushes the recomputed view to the notifier. Failures here
// never roll back the mutation that triggered it.
func (s *GameService) notifyUpdate(ctx context.Context, game *models.Game, mutation string) {
	view, err := s.buildView(ctx, game)
	if err != nil {
		log.Errorf("unable to build game view for broadcast, game %s: %v", game.ShortCode, err)
		return
	}

	s.notifier.GameUpdated(ctx, comm.GameUpdate{
		Type:     mutation,
		GameCode: game.ShortCode,
		Data:     *view,
	})
}
