package service

import (
	"context"
	"sync"
	"time"

	"github.com/avvvet/minigolf-services/internal/comm"
	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
	"github.com/avvvet/minigolf-services/internal/golfsvc/store"
)

// memDB is an in-memory stand-in for the pgx stores, mirroring their
// contracts: nil,nil for not-found, upsert keyed on (player, hole),
// atomic-looking game updates.
type memDB struct {
	mu      sync.Mutex
	nextID  int64
	games   map[int64]*models.Game
	players map[int64]*models.Player
	scores  map[int64]*models.Score
	users   map[int64]*models.User

	// when set, CreateGame always reports a short code collision
	alwaysTaken     bool
	createGameCalls int
}

func newMemDB() *memDB {
	return &memDB{
		games:   make(map[int64]*models.Game),
		players: make(map[int64]*models.Player),
		scores:  make(map[int64]*models.Score),
		users:   make(map[int64]*models.User),
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) CreateGame(ctx context.Context, shortCode string) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createGameCalls++
	if m.alwaysTaken {
		return nil, store.ErrShortCodeTaken
	}
	for _, g := range m.games {
		if g.ShortCode == shortCode {
			return nil, store.ErrShortCodeTaken
		}
	}

	g := &models.Game{
		ID:          m.id(),
		ShortCode:   shortCode,
		NumHoles:    1,
		CurrentHole: 1,
		CreatedAt:   time.Now(),
	}
	m.games[g.ID] = g
	out := *g
	return &out, nil
}

func (m *memDB) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[gameID]
	if !ok {
		return nil, nil
	}
	out := *g
	return &out, nil
}

func (m *memDB) GetGameByCode(ctx context.Context, shortCode string) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.games {
		if g.ShortCode == shortCode {
			out := *g
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memDB) AddHole(ctx context.Context, gameID int64) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[gameID]
	if !ok {
		return nil, nil
	}
	g.NumHoles++
	g.CurrentHole = g.NumHoles
	out := *g
	return &out, nil
}

func (m *memDB) SetCurrentHole(ctx context.Context, gameID int64, holeNumber int) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[gameID]
	if !ok || holeNumber > g.NumHoles {
		return nil, nil
	}
	g.CurrentHole = holeNumber
	out := *g
	return &out, nil
}

func (m *memDB) CreatePlayer(ctx context.Context, gameID int64, name, ballColor string) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &models.Player{
		ID:        m.id(),
		GameID:    gameID,
		Name:      name,
		BallColor: ballColor,
		CreatedAt: time.Now(),
	}
	m.players[p.ID] = p
	out := *p
	return &out, nil
}

func (m *memDB) GetPlayerInGame(ctx context.Context, playerID, gameID int64) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[playerID]
	if !ok || p.GameID != gameID {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (m *memDB) GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var players []*models.Player
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.players[id]; ok && p.GameID == gameID {
			out := *p
			players = append(players, &out)
		}
	}
	return players, nil
}

func (m *memDB) UpdatePlayer(ctx context.Context, playerID, gameID int64, name, ballColor string) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[playerID]
	if !ok || p.GameID != gameID {
		return nil, nil
	}
	p.Name = name
	p.BallColor = ballColor
	out := *p
	return &out, nil
}

func (m *memDB) UpsertScore(ctx context.Context, playerID, gameID int64, holeNumber, score int) (*models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sc := range m.scores {
		if sc.PlayerID == playerID && sc.HoleNumber == holeNumber {
			sc.Score = score
			out := *sc
			return &out, nil
		}
	}

	sc := &models.Score{
		ID:         m.id(),
		PlayerID:   playerID,
		GameID:     gameID,
		HoleNumber: holeNumber,
		Score:      score,
		CreatedAt:  time.Now(),
	}
	m.scores[sc.ID] = sc
	out := *sc
	return &out, nil
}

func (m *memDB) GetScoresByGameID(ctx context.Context, gameID int64) ([]*models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var scores []*models.Score
	for id := int64(1); id <= m.nextID; id++ {
		if sc, ok := m.scores[id]; ok && sc.GameID == gameID {
			out := *sc
			scores = append(scores, &out)
		}
	}
	return scores, nil
}

func (m *memDB) GetScoresForHole(ctx context.Context, gameID int64, holeNumber int) ([]*models.Score, error) {
	all, _ := m.GetScoresByGameID(ctx, gameID)
	var scores []*models.Score
	for _, sc := range all {
		if sc.HoleNumber == holeNumber {
			scores = append(scores, sc)
		}
	}
	return scores, nil
}

func (m *memDB) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return nil, store.ErrUsernameTaken
		}
	}

	u := &models.User{
		ID:           m.id(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	out := *u
	return &out, nil
}

func (m *memDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memDB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

// recordingNotifier captures every update the services push.
type recordingNotifier struct {
	mu      sync.Mutex
	updates []comm.GameUpdate
}

func (n *recordingNotifier) GameUpdated(ctx context.Context, update comm.GameUpdate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, update)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.updates))
	for _, u := range n.updates {
		out = append(out, u.Type)
	}
	return out
}

// newServices wires the full service stack over one memDB.
func newServices(db *memDB, notifier Notifier) (*GameService, *PlayerService, *ScoreService) {
	games := NewGameService(db, db, db, notifier)
	scores := NewScoreService(db, db, db, games, 10)
	players := NewPlayerService(db, db, games, scores)
	return games, players, scores
}
