package handlers

import (
	"net/http"
	"strconv"

	"github.com/mattbolt/math-hack/internal/models"
	"github.com/mattbolt/math-hack/internal/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	manager *services.GameManager
}

func NewGameHandler(manager *services.GameManager) *GameHandler {
	return &GameHandler{manager: manager}
}

type CreateGameRequest struct {
	HostID       string `json:"hostId" binding:"required"`
	HostName     string `json:"hostName" binding:"required,min=1,max=100"`
	MaxPlayers   int    `json:"maxPlayers"`
	GameDuration int    `json:"gameDuration"`
}

type JoinGameRequest struct {
	Code     string `json:"code" binding:"required"`
	PlayerID string `json:"playerId" binding:"required"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
}

// CreateGame godoc
// @Summary      Create a game session
// @Description  Creates a session with a unique join code and its host player
// @Tags         game
// @Router       /api/game/create [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, host, err := h.manager.CreateSession(req.HostID, req.HostName, req.MaxPlayers, req.GameDuration)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session, "player": host})
}

// JoinGame godoc
// @Summary      Join a game session by code
// @Tags         game
// @Router       /api/game/join [post]
func (h *GameHandler) JoinGame(c *gin.Context) {
	var req JoinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, player, err := h.manager.JoinSession(req.Code, req.PlayerID, req.Name)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session, "player": player})
}

// GetState godoc
// @Summary      Snapshot of a session
// @Description  Session, roster and, when playerId is given, that player's current question
// @Tags         game
// @Param        sessionId path int true "Session ID"
// @Param        playerId query string false "Player ID"
// @Router       /api/game/{sessionId}/state [get]
func (h *GameHandler) GetState(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("sessionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	state, err := h.manager.GetState(uint(sessionID), c.Query("playerId"))
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// ListPowerUps godoc
// @Summary      Power-up catalog
// @Tags         game
// @Router       /api/powerups [get]
func (h *GameHandler) ListPowerUps(c *gin.Context) {
	c.JSON(http.StatusOK, models.PowerUpCatalog)
}
