package storage

import (
	"errors"

	"github.com/mattbolt/math-hack/internal/models"

	"gorm.io/gorm"
)

// GormStore backs the store contract with a relational database. Swapping it
// in changes durability only; the coordinator's read/update sequences are
// identical against either backend.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) CreateSession(session *models.GameSession) error {
	return g.db.Create(session).Error
}

func (g *GormStore) GetSession(id uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := g.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (g *GormStore) GetSessionByCode(code string) (*models.GameSession, error) {
	var session models.GameSession
	if err := g.db.Where("code = ?", code).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (g *GormStore) UpdateSession(session *models.GameSession) error {
	return g.db.Save(session).Error
}

func (g *GormStore) CreatePlayer(player *models.Player) error {
	return g.db.Create(player).Error
}

func (g *GormStore) GetPlayer(sessionID uint, playerID string) (*models.Player, error) {
	var player models.Player
	err := g.db.Where("session_id = ? AND player_id = ?", sessionID, playerID).
		First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (g *GormStore) PlayersBySession(sessionID uint) ([]models.Player, error) {
	var players []models.Player
	err := g.db.Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (g *GormStore) UpdatePlayer(player *models.Player) error {
	return g.db.Save(player).Error
}
