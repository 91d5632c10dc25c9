package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, gameID int64, name, ballColor string) (*models.Player, error) {
	query := `
		INSERT INTO players (game_id, name, ball_color)
		VALUES ($1, $2, $3)
		RETURNING id, game_id, name, ball_color, created_at
	`

	player := &models.Player{}
	err := s.db.QueryRow(ctx, query, gameID, name, ballColor).Scan(
		&player.ID,
		&player.GameID,
		&player.Name,
		&player.BallColor,
		&player.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// GetPlayerInGame looks up a player scoped to one game, so a player id from
// another game never passes validation.
func (s *PlayerStore) GetPlayerInGame(ctx context.Context, playerID, gameID int64) (*models.Player, error) {
	query := `
		SELECT id, game_id, name, ball_color, created_at
		FROM players
		WHERE id = $1 AND game_id = $2
	`

	player := &models.Player{}
	err := s.db.QueryRow(ctx, query, playerID, gameID).Scan(
		&player.ID,
		&player.GameID,
		&player.Name,
		&player.BallColor,
		&player.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Player not found in this game
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (s *PlayerStore) GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.Player, error) {
	query := `
		SELECT id, game_id, name, ball_color, created_at
		FROM players
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		var p models.Player
		err := rows.Scan(
			&p.ID,
			&p.GameID,
			&p.Name,
			&p.BallColor,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, &p)
	}

	return players, nil
}

func (s *PlayerStore) UpdatePlayer(ctx context.Context, playerID, gameID int64, name, ballColor string) (*models.Player, error) {
	query := `
		UPDATE players
		SET name = $3, ball_color = $4
		WHERE id = $1 AND game_id = $2
		RETURNING id, game_id, name, ball_color, created_at
	`

	player := &models.Player{}
	err := s.db.QueryRow(ctx, query, playerID, gameID, name, ballColor).Scan(
		&player.ID,
		&player.GameID,
		&player.Name,
		&player.BallColor,
		&player.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return player, nil
}
