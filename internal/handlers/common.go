package handlers

import (
	"errors"
	"net/http"

	"github.com/mattbolt/math-hack/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// statusFor maps a service error onto the HTTP status the REST surface
// reports for it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrSessionFull),
		errors.Is(err, services.ErrAlreadyStarted),
		errors.Is(err, services.ErrDuelInProgress):
		return http.StatusConflict
	case errors.Is(err, services.ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrNotHost),
		errors.Is(err, services.ErrPlayersNotReady),
		errors.Is(err, services.ErrNotEnoughPlayers),
		errors.Is(err, services.ErrGameNotActive),
		errors.Is(err, services.ErrInvalidPowerUp),
		errors.Is(err, services.ErrInvalidTarget):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
