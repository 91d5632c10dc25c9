package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrShortCodeTaken is returned when a game insert hits the short_code
// unique constraint, so the caller can retry with a fresh code.
var ErrShortCodeTaken = errors.New("short code already taken")

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) CreateGame(ctx context.Context, shortCode string) (*models.Game, error) {
	query := `
		INSERT INTO games (short_code, num_holes, current_hole)
		VALUES ($1, 1, 1)
		RETURNING id, short_code, num_holes, current_hole, created_at
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, shortCode).Scan(
		&game.ID,
		&game.ShortCode,
		&game.NumHoles,
		&game.CurrentHole,
		&game.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrShortCodeTaken
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `
		SELECT id, short_code, num_holes, current_hole, created_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.ShortCode,
		&game.NumHoles,
		&game.CurrentHole,
		&game.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

func (s *GameStore) GetGameByCode(ctx context.Context, shortCode string) (*models.Game, error) {
	query := `
		SELECT id, short_code, num_holes, current_hole, created_at
		FROM games
		WHERE short_code = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, shortCode).Scan(
		&game.ID,
		&game.ShortCode,
		&game.NumHoles,
		&game.CurrentHole,
		&game.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by code: %w", err)
	}

	return game, nil
}

// AddHole grows the game by one hole and moves the current hole to it in a
// single UPDATE, so concurrent add-hole requests each land on a distinct
// new frontier.
func (s *GameStore) AddHole(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `
		UPDATE games
		SET num_holes = num_holes + 1, current_hole = num_holes + 1
		WHERE id = $1
		RETURNING id, short_code, num_holes, current_hole, created_at
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.ShortCode,
		&game.NumHoles,
		&game.CurrentHole,
		&game.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to add hole: %w", err)
	}

	return game, nil
}

// SetCurrentHole moves the active hole. The bounds check lives in the WHERE
// clause so a stale caller can never point current_hole past num_holes.
func (s *GameStore) SetCurrentHole(ctx context.Context, gameID int64, holeNumber int) (*models.Game, error) {
	query := `
		UPDATE games
		SET current_hole = $2
		WHERE id = $1 AND $2 <= num_holes
		RETURNING id, short_code, num_holes, current_hole, created_at
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID, holeNumber).Scan(
		&game.ID,
		&game.ShortCode,
		&game.NumHoles,
		&game.CurrentHole,
		&game.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // missing game or hole out of range
		}
		return nil, fmt.Errorf("failed to set current hole: %w", err)
	}

	return game, nil
}

// DeleteStaleGames removes games created before cutoff that also have no
// player or score activity since cutoff, cascading scores and players in
// one transaction. Returns the number of games, players and scores deleted.
func (s *GameStore) DeleteStaleGames(ctx context.Context, cutoff time.Time) (int64, int64, int64, error) {
	const staleGames = `
		SELECT g.id FROM games g
		WHERE g.created_at < $1
		  AND NOT EXISTS (
			SELECT 1 FROM players p WHERE p.game_id = g.id AND p.created_at >= $1
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM scores sc WHERE sc.game_id = g.id AND sc.created_at >= $1
		  )
	`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to begin sweep transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `DELETE FROM scores WHERE game_id IN (`+staleGames+`)`, cutoff)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to delete stale scores: %w", err)
	}
	scores := ct.RowsAffected()

	ct, err = tx.Exec(ctx, `DELETE FROM players WHERE game_id IN (`+staleGames+`)`, cutoff)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to delete stale players: %w", err)
	}
	players := ct.RowsAffected()

	ct, err = tx.Exec(ctx, `DELETE FROM games WHERE id IN (`+staleGames+`)`, cutoff)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to delete stale games: %w", err)
	}
	games := ct.RowsAffected()

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to commit sweep: %w", err)
	}

	return games, players, scores, nil
}
