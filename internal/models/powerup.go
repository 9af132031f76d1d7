package models

type PowerUp struct {
	Name     string `json:"name"`
	Cost     int    `json:"cost"`
	Duration int    `json:"duration,omitempty"` // seconds; 0 for instant effects
	Effect   string `json:"effect"`
}

const (
	EffectSlow   = "slow"
	EffectFreeze = "freeze"
	EffectShield = "shield"
	EffectHack   = "hack"
)

// PowerUpCatalog is the fixed set of purchasable abilities. Shield is
// self-target only; hack starts a duel instead of a timed effect.
var PowerUpCatalog = []PowerUp{
	{Name: "Slow", Cost: 50, Duration: 10, Effect: EffectSlow},
	{Name: "Freeze", Cost: 100, Duration: 8, Effect: EffectFreeze},
	{Name: "Shield", Cost: 150, Duration: 10, Effect: EffectShield},
	{Name: "Hack", Cost: 250, Effect: EffectHack},
}

func PowerUpByEffect(effect string) (PowerUp, bool) {
	for _, p := range PowerUpCatalog {
		if p.Effect == effect {
			return p, true
		}
	}
	return PowerUp{}, false
}
