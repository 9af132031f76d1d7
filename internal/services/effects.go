package services

import (
	"time"

	"github.com/mattbolt/math-hack/internal/models"
)

type effectKey struct {
	playerID string
	kind     string
}

// EffectTracker holds the timed status effects for one session. Expiry is
// lazy: an effect is active iff an entry exists and its expiry is still in
// the future, so reads never race a sweeping timer. The owning session
// runtime serializes all access.
type EffectTracker struct {
	entries map[effectKey]time.Time
}

func NewEffectTracker() *EffectTracker {
	return &EffectTracker{entries: make(map[effectKey]time.Time)}
}

// Apply records a non-shield effect against a target, overwriting any prior
// entry of the same kind. Returns false if the target holds a live shield;
// the effect is suppressed and nothing is recorded.
func (t *EffectTracker) Apply(targetID, kind string, duration time.Duration, now time.Time) bool {
	if t.IsActive(targetID, models.EffectShield, now) {
		return false
	}
	t.entries[effectKey{targetID, kind}] = now.Add(duration)
	return true
}

// ApplyShield writes a shield for the player and cleanses every other effect
// currently held against them.
func (t *EffectTracker) ApplyShield(playerID string, duration time.Duration, now time.Time) {
	for key := range t.entries {
		if key.playerID == playerID && key.kind != models.EffectShield {
			delete(t.entries, key)
		}
	}
	t.entries[effectKey{playerID, models.EffectShield}] = now.Add(duration)
}

func (t *EffectTracker) IsActive(playerID, kind string, now time.Time) bool {
	expiry, ok := t.entries[effectKey{playerID, kind}]
	return ok && expiry.After(now)
}

// ActiveKinds reports the kinds currently affecting a player.
func (t *EffectTracker) ActiveKinds(playerID string, now time.Time) []string {
	var kinds []string
	for key, expiry := range t.entries {
		if key.playerID == playerID && expiry.After(now) {
			kinds = append(kinds, key.kind)
		}
	}
	return kinds
}

// Sweep prunes already-expired entries. Correctness never depends on it; it
// only bounds memory over long sessions.
func (t *EffectTracker) Sweep(now time.Time) {
	for key, expiry := range t.entries {
		if !expiry.After(now) {
			delete(t.entries, key)
		}
	}
}

func (t *EffectTracker) Len() int {
	return len(t.entries)
}
