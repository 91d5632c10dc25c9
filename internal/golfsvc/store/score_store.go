package store

import (
	"context"
	"fmt"

	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScoreStore struct {
	db *pgxpool.Pool
}

func NewScoreStore(db *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{db: db}
}

// UpsertScore inserts a score or overwrites the existing one for the same
// (player, hole). The ON CONFLICT path makes a re-submission a correction
// rather than a duplicate, even under concurrent submits.
func (s *ScoreStore) UpsertScore(ctx context.Context, playerID, gameID int64, holeNumber, score int) (*models.Score, error) {
	query := `
		INSERT INTO scores (player_id, game_id, hole_number, score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT unique_player_hole
		DO UPDATE SET score = EXCLUDED.score
		RETURNING id, player_id, game_id, hole_number, score, created_at
	`

	sc := &models.Score{}
	err := s.db.QueryRow(ctx, query, playerID, gameID, holeNumber, score).Scan(
		&sc.ID,
		&sc.PlayerID,
		&sc.GameID,
		&sc.HoleNumber,
		&sc.Score,
		&sc.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert score: %w", err)
	}

	return sc, nil
}

func (s *ScoreStore) GetScoresByGameID(ctx context.Context, gameID int64) ([]*models.Score, error) {
	query := `
		SELECT id, player_id, game_id, hole_number, score, created_at
		FROM scores
		WHERE game_id = $1
		ORDER BY hole_number, player_id
	`

	return s.queryScores(ctx, query, gameID)
}

func (s *ScoreStore) GetScoresForHole(ctx context.Context, gameID int64, holeNumber int) ([]*models.Score, error) {
	query := `
		SELECT id, player_id, game_id, hole_number, score, created_at
		FROM scores
		WHERE game_id = $1 AND hole_number = $2
		ORDER BY player_id
	`

	return s.queryScores(ctx, query, gameID, holeNumber)
}

func (s *ScoreStore) queryScores(ctx context.Context, query string, args ...interface{}) ([]*models.Score, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []*models.Score
	for rows.Next() {
		var sc models.Score
		err := rows.Scan(
			&sc.ID,
			&sc.PlayerID,
			&sc.GameID,
			&sc.HoleNumber,
			&sc.Score,
			&sc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		scores = append(scores, &sc)
	}

	return scores, nil
}
