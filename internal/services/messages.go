package services

import "github.com/mattbolt/math-hack/internal/models"

// Outbound message types carried by ws.WSMessage.
const (
	MsgGameState       = "gameState"
	MsgPlayerJoined    = "playerJoined"
	MsgPlayerUpdated   = "playerUpdated"
	MsgGameStarted     = "gameStarted"
	MsgNewQuestion     = "newQuestion"
	MsgAnswerSubmitted = "answerSubmitted"
	MsgHackStarted     = "hackStarted"
	MsgHackProgress    = "hackProgress"
	MsgHackCompleted   = "hackCompleted"
	MsgPowerUpUsed     = "powerUpUsed"
	MsgQuestionSkipped = "questionSkipped"
	MsgGameLogUpdated  = "gameLogUpdated"
	MsgGameEnded       = "gameEnded"
)

type GameStatePayload struct {
	Session         *models.GameSession `json:"session"`
	Players         []models.Player     `json:"players"`
	CurrentQuestion *models.Question    `json:"currentQuestion,omitempty"`
}

type PlayerJoinedPayload struct {
	Players []models.Player `json:"players"`
}

type PlayerUpdatedPayload struct {
	Player models.Player `json:"player"`
}

type GameStartedPayload struct {
	Session *models.GameSession `json:"session"`
}

type NewQuestionPayload struct {
	Question models.Question `json:"question"`
}

type AnswerSubmittedPayload struct {
	PlayerID  string        `json:"playerId"`
	IsCorrect bool          `json:"isCorrect"`
	Player    models.Player `json:"player"`
}

type HackStartedPayload struct {
	HackerID   string `json:"hackerId"`
	TargetID   string `json:"targetId"`
	HackerName string `json:"hackerName"`
	TargetName string `json:"targetName"`
}

type HackProgressPayload struct {
	HackerID         string `json:"hackerId"`
	TargetID         string `json:"targetId"`
	AttackerProgress int    `json:"attackerProgress"`
	DefenderProgress int    `json:"defenderProgress"`
}

type HackCompletedPayload struct {
	HackerID      string `json:"hackerId"`
	TargetID      string `json:"targetId"`
	Success       bool   `json:"success"`
	CreditsStolen int    `json:"creditsStolen"`
}

type PowerUpUsedPayload struct {
	Effect   string `json:"effect"`
	TargetID string `json:"targetId"`
	Duration int    `json:"duration"`
}

type QuestionSkippedPayload struct {
	PlayerID string        `json:"playerId"`
	Player   models.Player `json:"player"`
}

type GameLogPayload struct {
	GameLog []models.GameLogEntry `json:"gameLog"`
}

type GameEndedPayload struct {
	Players []models.Player `json:"players"`
	Reason  string          `json:"reason"`
}
