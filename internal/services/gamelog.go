package services

import (
	"time"

	"github.com/mattbolt/math-hack/internal/models"

	"github.com/google/uuid"
)

// GameLogWindow caps how many entries a gameLogUpdated broadcast carries.
// The session keeps its full history for its own lifetime.
const GameLogWindow = 50

type GameLog struct {
	entries []models.GameLogEntry
}

func NewGameLog() *GameLog {
	return &GameLog{}
}

func (l *GameLog) Append(entry models.GameLogEntry) models.GameLogEntry {
	entry.ID = uuid.NewString()
	entry.Timestamp = time.Now()
	l.entries = append(l.entries, entry)
	return entry
}

// Recent returns up to n of the newest entries, oldest first.
func (l *GameLog) Recent(n int) []models.GameLogEntry {
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	window := l.entries[len(l.entries)-n:]
	out := make([]models.GameLogEntry, len(window))
	copy(out, window)
	return out
}

func (l *GameLog) Len() int {
	return len(l.entries)
}
