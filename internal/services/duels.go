package services

import (
	"github.com/google/uuid"
)

// DuelWinThreshold is the number of correct answers that decides a hack duel.
const DuelWinThreshold = 5

type Duel struct {
	ID               string `json:"id"`
	HackerID         string `json:"hackerId"`
	TargetID         string `json:"targetId"`
	AttackerProgress int    `json:"attackerProgress"`
	DefenderProgress int    `json:"defenderProgress"`
}

// DuelCoordinator tracks the live hack duels of one session and enforces the
// at-most-one-duel-per-player invariant. The owning session runtime
// serializes all access.
type DuelCoordinator struct {
	duels map[string]*Duel
}

func NewDuelCoordinator() *DuelCoordinator {
	return &DuelCoordinator{duels: make(map[string]*Duel)}
}

// Start creates a duel between hacker and target. It fails if either player
// already participates in a live duel.
func (d *DuelCoordinator) Start(hackerID, targetID string) (*Duel, error) {
	if d.ByParticipant(hackerID) != nil || d.ByParticipant(targetID) != nil {
		return nil, ErrDuelInProgress
	}
	duel := &Duel{
		ID:       uuid.NewString(),
		HackerID: hackerID,
		TargetID: targetID,
	}
	d.duels[duel.ID] = duel
	return duel, nil
}

// ByParticipant returns the live duel in which the player appears as hacker
// or target, or nil.
func (d *DuelCoordinator) ByParticipant(playerID string) *Duel {
	for _, duel := range d.duels {
		if duel.HackerID == playerID || duel.TargetID == playerID {
			return duel
		}
	}
	return nil
}

// Advance credits a correct answer by the player to their side of the duel
// they participate in. Returns the duel and whether it is now decided.
func (d *DuelCoordinator) Advance(playerID string) (*Duel, bool) {
	duel := d.ByParticipant(playerID)
	if duel == nil {
		return nil, false
	}
	if duel.HackerID == playerID {
		duel.AttackerProgress++
	} else {
		duel.DefenderProgress++
	}
	decided := duel.AttackerProgress >= DuelWinThreshold || duel.DefenderProgress >= DuelWinThreshold
	return duel, decided
}

// Remove deletes a resolved or forfeited duel.
func (d *DuelCoordinator) Remove(id string) {
	delete(d.duels, id)
}

func (d *DuelCoordinator) Len() int {
	return len(d.duels)
}
