package services

import (
	"errors"
	"math/rand"

	"github.com/mattbolt/math-hack/internal/storage"
)

const (
	sessionCodeLength   = 6
	sessionCodeAttempts = 10
	sessionCodeChars    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// generateSessionCode allocates a join code that no existing session holds.
// Attempts are bounded; an exhausted budget fails closed rather than handing
// out a colliding code.
func (m *GameManager) generateSessionCode() (string, error) {
	for attempt := 0; attempt < sessionCodeAttempts; attempt++ {
		code := randomSessionCode()
		_, err := m.store.GetSessionByCode(code)
		if errors.Is(err, storage.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", ErrCodeSpaceExhausted
}

func randomSessionCode() string {
	b := make([]byte, sessionCodeLength)
	for i := range b {
		b[i] = sessionCodeChars[rand.Intn(len(sessionCodeChars))]
	}
	return string(b)
}
