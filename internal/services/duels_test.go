package services

import (
	"errors"
	"testing"
)

func TestDuelCoordinatorStart(t *testing.T) {
	duels := NewDuelCoordinator()

	duel, err := duels.Start("alice", "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if duel.HackerID != "alice" || duel.TargetID != "bob" {
		t.Fatalf("wrong participants: %+v", duel)
	}
	if duel.AttackerProgress != 0 || duel.DefenderProgress != 0 {
		t.Fatal("progress counters must start at zero")
	}
}

func TestDuelCoordinatorOneDuelPerPlayer(t *testing.T) {
	tests := []struct {
		name   string
		hacker string
		target string
	}{
		{"hacker already attacking", "alice", "carol"},
		{"hacker already targeted", "bob", "carol"},
		{"target already attacking", "carol", "alice"},
		{"target already targeted", "carol", "bob"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			duels := NewDuelCoordinator()
			if _, err := duels.Start("alice", "bob"); err != nil {
				t.Fatalf("seed duel failed: %v", err)
			}

			if _, err := duels.Start(tc.hacker, tc.target); !errors.Is(err, ErrDuelInProgress) {
				t.Errorf("expected ErrDuelInProgress, got %v", err)
			}
		})
	}
}

func TestDuelCoordinatorAdvance(t *testing.T) {
	duels := NewDuelCoordinator()
	duels.Start("alice", "bob")

	for i := 1; i < DuelWinThreshold; i++ {
		duel, decided := duels.Advance("alice")
		if duel == nil || decided {
			t.Fatalf("duel decided too early at attacker progress %d", i)
		}
		if duel.AttackerProgress != i {
			t.Fatalf("expected attacker progress %d, got %d", i, duel.AttackerProgress)
		}
	}

	duel, decided := duels.Advance("bob")
	if duel.DefenderProgress != 1 {
		t.Fatalf("expected defender progress 1, got %d", duel.DefenderProgress)
	}
	if decided {
		t.Fatal("defender at 1 should not decide the duel")
	}

	duel, decided = duels.Advance("alice")
	if !decided || duel.AttackerProgress != DuelWinThreshold {
		t.Fatalf("attacker reaching %d should decide the duel (progress %d)", DuelWinThreshold, duel.AttackerProgress)
	}

	duels.Remove(duel.ID)
	if duels.ByParticipant("alice") != nil || duels.ByParticipant("bob") != nil {
		t.Error("participants should be free after removal")
	}
}

func TestDuelCoordinatorAdvanceNonParticipant(t *testing.T) {
	duels := NewDuelCoordinator()
	duels.Start("alice", "bob")

	if duel, _ := duels.Advance("carol"); duel != nil {
		t.Error("a bystander's answer must not advance the duel")
	}
}
