package sweep

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// games with no creation/player/score activity in this window are stale
	retention = 3 * 24 * time.Hour
	runHour   = 2 // 02:00 UTC daily
)

type Store interface {
	DeleteStaleGames(ctx context.Context, cutoff time.Time) (games, players, scores int64, err error)
}

// Sweeper deletes stale games on a daily schedule. Failures are logged and
// the schedule continues; a broken sweep never takes the process down.
type Sweeper struct {
	store Store
	now   func() time.Time
}

func NewSweeper(store Store) *Sweeper {
	return &Sweeper{store: store, now: time.Now}
}

// Run performs one sweep and returns the deleted game count.
func (s *Sweeper) Run(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-retention)

	games, players, scores, err := s.store.DeleteStaleGames(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	log.Infof("stale games cleanup: deleted %d game(s), %d player(s), %d score(s)", games, players, scores)
	return games, nil
}

// Start schedules the sweep daily at 02:00 UTC until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		for {
			timer := time.NewTimer(s.untilNextRun())
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
				if _, err := s.Run(runCtx); err != nil {
					log.Errorf("stale games cleanup failed: %v", err)
				}
				cancel()
			}
		}
	}()

	log.Infof("stale games cleanup scheduled daily for %02d:00 UTC", runHour)
}

func (s *Sweeper) untilNextRun() time.Duration {
	now := s.now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), runHour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
