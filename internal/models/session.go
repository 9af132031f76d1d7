package models

import "time"

type GameSession struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"size:6;uniqueIndex" json:"code"`
	HostID         string     `gorm:"size:64;not null;index" json:"hostId"`
	Status         string     `gorm:"size:20;not null;default:'waiting'" json:"status"`
	MaxPlayers     int        `gorm:"not null;default:4" json:"maxPlayers"`
	QuestionNumber int        `gorm:"not null;default:0" json:"questionNumber"`
	GameDuration   int        `gorm:"not null;default:15" json:"gameDuration"`
	GameStartTime  *time.Time `json:"gameStartTime,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

const (
	SessionStatusWaiting  = "waiting"
	SessionStatusActive   = "active"
	SessionStatusFinished = "finished"
)
