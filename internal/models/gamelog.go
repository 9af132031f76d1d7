package models

import "time"

type GameLogEntry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Kind         string    `json:"type"`
	PlayerID     string    `json:"playerId,omitempty"`
	PlayerName   string    `json:"playerName,omitempty"`
	TargetID     string    `json:"targetId,omitempty"`
	TargetName   string    `json:"targetName,omitempty"`
	Details      string    `json:"details"`
	CreditChange int       `json:"creditChange,omitempty"`
}

const (
	LogPowerUp      = "powerup"
	LogCreditChange = "credit_change"
	LogHackStart    = "hack_start"
	LogHackComplete = "hack_complete"
	LogGameStart    = "game_start"
	LogPlayerJoin   = "player_join"
)
