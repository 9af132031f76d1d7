package models

import "time"

type Player struct {
	ID                        uint      `gorm:"primaryKey" json:"id"`
	SessionID                 uint      `gorm:"not null;index" json:"sessionId"`
	PlayerID                  string    `gorm:"size:64;not null;index" json:"playerId"`
	Name                      string    `gorm:"size:100;not null" json:"name"`
	Credits                   int       `gorm:"not null;default:0" json:"credits"`
	CorrectAnswers            int       `gorm:"not null;default:0" json:"correctAnswers"`
	WrongAnswers              int       `gorm:"not null;default:0" json:"wrongAnswers"`
	DifficultyLevel           int       `gorm:"not null;default:1" json:"difficultyLevel"`
	MaxDifficultyReached      int       `gorm:"not null;default:1" json:"maxDifficultyReached"`
	ConsecutiveCorrect        int       `gorm:"not null;default:0" json:"consecutiveCorrect"`
	ConsecutiveWrong          int       `gorm:"not null;default:0" json:"consecutiveWrong"`
	OverallConsecutiveCorrect int       `gorm:"not null;default:0" json:"overallConsecutiveCorrect"`
	IsHost                    bool      `gorm:"not null;default:false" json:"isHost"`
	IsReady                   bool      `gorm:"not null;default:false" json:"isReady"`
	QuestionsSkipped          int       `gorm:"not null;default:0" json:"questionsSkipped"`
	HackAttempts              int       `gorm:"not null;default:0" json:"hackAttempts"`
	JoinedAt                  time.Time `json:"joinedAt"`
}
