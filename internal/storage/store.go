package storage

import (
	"errors"

	"github.com/mattbolt/math-hack/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Store is the persistence contract for session and player records. The
// coordinator performs read-then-write sequences against it; anything owned
// purely by a live session (effects, duels, last-issued questions) never
// touches the store.
type Store interface {
	CreateSession(session *models.GameSession) error
	GetSession(id uint) (*models.GameSession, error)
	GetSessionByCode(code string) (*models.GameSession, error)
	UpdateSession(session *models.GameSession) error

	CreatePlayer(player *models.Player) error
	GetPlayer(sessionID uint, playerID string) (*models.Player, error)
	PlayersBySession(sessionID uint) ([]models.Player, error)
	UpdatePlayer(player *models.Player) error
}
