package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/mattbolt/math-hack/internal/models"
)

// MemoryStore keeps all records in process memory for the life of the
// server. It is the default backend; sessions do not survive a restart.
type MemoryStore struct {
	mu            sync.RWMutex
	sessions      map[uint]*models.GameSession
	players       map[uint]*models.Player
	nextSessionID uint
	nextPlayerID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uint]*models.GameSession),
		players:  make(map[uint]*models.Player),
	}
}

func (m *MemoryStore) CreateSession(session *models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSessionID++
	session.ID = m.nextSessionID
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	stored := *session
	m.sessions[session.ID] = &stored
	return nil
}

func (m *MemoryStore) GetSession(id uint) (*models.GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *MemoryStore) GetSessionByCode(code string) (*models.GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, session := range m.sessions {
		if session.Code == code {
			copied := *session
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateSession(session *models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[session.ID]; !ok {
		return ErrNotFound
	}
	stored := *session
	m.sessions[session.ID] = &stored
	return nil
}

func (m *MemoryStore) CreatePlayer(player *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextPlayerID++
	player.ID = m.nextPlayerID
	if player.JoinedAt.IsZero() {
		player.JoinedAt = time.Now()
	}
	stored := *player
	m.players[player.ID] = &stored
	return nil
}

func (m *MemoryStore) GetPlayer(sessionID uint, playerID string) (*models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, player := range m.players {
		if player.SessionID == sessionID && player.PlayerID == playerID {
			copied := *player
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) PlayersBySession(sessionID uint) ([]models.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var players []models.Player
	for _, player := range m.players {
		if player.SessionID == sessionID {
			players = append(players, *player)
		}
	}
	// Stable roster order for broadcasts.
	sort.Slice(players, func(a, b int) bool {
		return players[a].ID < players[b].ID
	})
	return players, nil
}

func (m *MemoryStore) UpdatePlayer(player *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[player.ID]; !ok {
		return ErrNotFound
	}
	stored := *player
	m.players[player.ID] = &stored
	return nil
}
