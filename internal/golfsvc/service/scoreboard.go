package service

import (
	"sort"

	"github.com/avvvet/minigolf-services/internal/comm"
	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
)

// HoleComplete reports whether every player has a score recorded for the
// given hole. A game with no players is never complete, so an empty game
// cannot flip the frontier rule on.
func HoleComplete(players []*models.Player, scores []*models.Score, holeNumber int) bool {
	if len(players) == 0 {
		return false
	}

	scored := make(map[int64]bool, len(players))
	for _, sc := range scores {
		if sc.HoleNumber == holeNumber {
			scored[sc.PlayerID] = true
		}
	}

	for _, p := range players {
		if !scored[p.ID] {
			return false
		}
	}
	return true
}

// BuildScoreboard ranks players by total strokes ascending. Totals count
// holes strictly before the current hole; once every player has finished
// the current hole it counts as well, so a completed frontier shows up
// immediately without exposing a half-scored leaderboard mid-hole.
func BuildScoreboard(game models.Game, players []*models.Player, scores []*models.Score) []comm.ScoreboardEntry {
	countedHole := game.CurrentHole - 1
	if HoleComplete(players, scores, game.CurrentHole) {
		countedHole = game.CurrentHole
	}

	entries := make([]comm.ScoreboardEntry, 0, len(players))
	for _, p := range players {
		total, played := 0, 0
		for _, sc := range scores {
			if sc.PlayerID == p.ID && sc.HoleNumber <= countedHole {
				total += sc.Score
				played++
			}
		}
		entries = append(entries, comm.ScoreboardEntry{
			Player:      p,
			TotalScore:  total,
			HolesPlayed: played,
		})
	}

	// Tie-break: fewer holes played ranks ahead, then player id for a
	// stable order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore < entries[j].TotalScore
		}
		if entries[i].HolesPlayed != entries[j].HolesPlayed {
			return entries[i].HolesPlayed < entries[j].HolesPlayed
		}
		return entries[i].Player.ID < entries[j].Player.ID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
