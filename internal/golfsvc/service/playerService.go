package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
	log "github.com/sirupsen/logrus"
)

var ballColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type PlayerService struct {
	gameStore   GameStore
	playerStore PlayerStore
	games       *GameService
	scores      *ScoreService
}

func NewPlayerService(gameStore GameStore, playerStore PlayerStore, games *GameService, scores *ScoreService) *PlayerService {
	return &PlayerService{
		gameStore:   gameStore,
		playerStore: playerStore,
		games:       games,
		scores:      scores,
	}
}

func validatePlayerInput(name, ballColor string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", validationf("player name is required")
	}
	if len(trimmed) > 50 {
		return "", validationf("player name must be between 1 and 50 characters")
	}
	if !ballColorPattern.MatchString(ballColor) {
		return "", validationf("invalid ball color format")
	}
	return trimmed, nil
}

// AddPlayer joins a player to a game and backfills holes already played
// before they arrived. Each hole strictly before the current one gets the
// field's floored average, so a late joiner's running total stays
// comparable; holes with no scores at all stay unscored rather than
// recording a zero. The backfill loop is strictly sequential: each write
// shifts the averages later reads would see.
func (s *PlayerService) AddPlayer(ctx context.Context, gameID int64, name, ballColor string) (*models.Player, error) {
	if gameID <= 0 {
		return nil, validationf("invalid game ID: %d", gameID)
	}

	trimmed, err := validatePlayerInput(name, ballColor)
	if err != nil {
		return nil, err
	}

	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &NotFoundError{Resource: "game"}
	}

	player, err := s.playerStore.CreatePlayer(ctx, gameID, trimmed, ballColor)
	if err != nil {
		return nil, err
	}

	for hole := 1; hole < game.CurrentHole; hole++ {
		avg, err := s.scores.GetAverageScoreForHole(ctx, gameID, hole)
		if err != nil {
			log.Errorf("backfill: unable to read average for game %d hole %d: %v", gameID, hole, err)
			continue
		}
		if avg <= 0 {
			continue
		}
		if _, err := s.scores.SubmitScore(ctx, player.ID, gameID, hole, avg); err != nil {
			log.Errorf("backfill: unable to record score for player %d hole %d: %v", player.ID, hole, err)
		}
	}

	s.games.notifyUpdate(ctx, game, mutationPlayerAdded)
	return player, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, playerID, gameID int64, name, ballColor string) (*models.Player, error) {
	if gameID <= 0 {
		return nil, validationf("invalid game ID: %d", gameID)
	}
	if playerID <= 0 {
		return nil, validationf("invalid player ID: %d", playerID)
	}

	trimmed, err := validatePlayerInput(name, ballColor)
	if err != nil {
		return nil, err
	}

	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &NotFoundError{Resource: "game"}
	}

	existing, err := s.playerStore.GetPlayerInGame(ctx, playerID, gameID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &NotFoundError{Resource: "player"}
	}

	player, err := s.playerStore.UpdatePlayer(ctx, playerID, gameID, trimmed, ballColor)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, &NotFoundError{Resource: "player"}
	}

	s.games.notifyUpdate(ctx, game, mutationPlayer)
	return player, nil
}
