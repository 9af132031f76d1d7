package services

import (
	"fmt"
	"testing"

	"github.com/mattbolt/math-hack/internal/models"
)

func TestGameLogAppendAndWindow(t *testing.T) {
	gameLog := NewGameLog()

	for i := 0; i < 60; i++ {
		entry := gameLog.Append(models.GameLogEntry{
			Kind:    models.LogCreditChange,
			Details: fmt.Sprintf("event %d", i),
		})
		if entry.ID == "" || entry.Timestamp.IsZero() {
			t.Fatal("append should assign id and timestamp")
		}
	}

	if gameLog.Len() != 60 {
		t.Fatalf("full history should be retained, got %d", gameLog.Len())
	}

	recent := gameLog.Recent(GameLogWindow)
	if len(recent) != GameLogWindow {
		t.Fatalf("expected window of %d, got %d", GameLogWindow, len(recent))
	}
	if recent[len(recent)-1].Details != "event 59" {
		t.Errorf("window should end at the newest entry, got %q", recent[len(recent)-1].Details)
	}
	if recent[0].Details != "event 10" {
		t.Errorf("window should start %d entries back, got %q", GameLogWindow, recent[0].Details)
	}
}

func TestGameLogRecentSmallerThanWindow(t *testing.T) {
	gameLog := NewGameLog()
	gameLog.Append(models.GameLogEntry{Kind: models.LogPlayerJoin, Details: "joined"})

	recent := gameLog.Recent(GameLogWindow)
	if len(recent) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(recent))
	}
}
