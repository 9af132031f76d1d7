package services

import "errors"

var (
	ErrSessionNotFound     = errors.New("game session not found")
	ErrPlayerNotFound      = errors.New("player not found in session")
	ErrSessionFull         = errors.New("game session is full")
	ErrAlreadyJoined       = errors.New("player already in session")
	ErrAlreadyStarted      = errors.New("game has already started")
	ErrGameNotActive       = errors.New("game is not active")
	ErrNotHost             = errors.New("only the host can do that")
	ErrPlayersNotReady     = errors.New("all players must be ready")
	ErrNotEnoughPlayers    = errors.New("at least two players are required")
	ErrInsufficientCredits = errors.New("not enough credits")
	ErrDuelInProgress      = errors.New("a hack involving that player is already running")
	ErrInvalidPowerUp      = errors.New("unknown power-up")
	ErrInvalidTarget       = errors.New("invalid power-up target")
	ErrPlayerFrozen        = errors.New("player is frozen")
	ErrNoActiveQuestion    = errors.New("no active question for player")
	ErrCodeSpaceExhausted  = errors.New("could not allocate a unique session code")
)
