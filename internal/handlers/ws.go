package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mattbolt/math-hack/internal/services"
	"github.com/mattbolt/math-hack/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub     *ws.Hub
	manager *services.GameManager
}

func NewWSHandler(hub *ws.Hub, manager *services.GameManager) *WSHandler {
	return &WSHandler{hub: hub, manager: manager}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundMessage is the envelope for every frame a client sends.
type inboundMessage struct {
	Type        string `json:"type"`
	SessionID   uint   `json:"sessionId"`
	PlayerID    string `json:"playerId"`
	Answer      *int   `json:"answer,omitempty"`
	PowerUpType string `json:"powerUpType,omitempty"`
	TargetID    string `json:"targetId,omitempty"`
}

// HandleWebSocket godoc
// @Summary      Realtime game connection
// @Description  Upgrade to WebSocket; the first joinSession frame binds the connection to a session and player
// @Tags         websocket
// @Router       /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	var client *ws.Client
	defer func() {
		if client != nil {
			h.hub.Remove(client)
			h.manager.HandleDisconnect(client.SessionID, client.PlayerID)
		} else {
			conn.Close()
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// Malformed frames are logged and dropped; the connection stays up.
			log.Printf("ws: malformed frame: %v", err)
			continue
		}

		// Once the connection is in the hub all writes go through it, so a
		// broadcast never races a reply on the same socket.
		if msg.Type == "joinSession" {
			state, err := h.manager.HandleJoinSession(msg.SessionID, msg.PlayerID)
			if err != nil {
				if client != nil {
					h.hub.SendToPlayer(client.SessionID, client.PlayerID, errorMessage(err))
				} else {
					h.writeTo(conn, errorMessage(err))
				}
				continue
			}
			if client != nil {
				h.hub.Detach(client)
				h.manager.HandleDisconnect(client.SessionID, client.PlayerID)
			}
			client = h.hub.Add(msg.SessionID, msg.PlayerID, conn)
			h.hub.SendToPlayer(client.SessionID, client.PlayerID, ws.WSMessage{Type: services.MsgGameState, Data: state})
			if err := h.manager.BroadcastRoster(client.SessionID); err != nil {
				log.Printf("ws: roster broadcast for session %d: %v", client.SessionID, err)
			}
			continue
		}

		if client == nil {
			h.writeTo(conn, errorMessage(services.ErrPlayerNotFound))
			continue
		}

		if err := h.dispatch(client, msg); err != nil {
			h.hub.SendToPlayer(client.SessionID, client.PlayerID, errorMessage(err))
		}
	}
}

func (h *WSHandler) dispatch(client *ws.Client, msg inboundMessage) error {
	switch msg.Type {
	case "startGame":
		return h.manager.StartGame(client.SessionID, client.PlayerID)
	case "toggleReady":
		return h.manager.ToggleReady(client.SessionID, client.PlayerID)
	case "submitAnswer":
		if msg.Answer == nil {
			return services.ErrNoActiveQuestion
		}
		return h.manager.SubmitAnswer(client.SessionID, client.PlayerID, *msg.Answer)
	case "usePowerUp":
		return h.manager.UsePowerUp(client.SessionID, client.PlayerID, msg.PowerUpType, msg.TargetID)
	case "skipQuestion":
		return h.manager.SkipQuestion(client.SessionID, client.PlayerID)
	default:
		log.Printf("ws: unknown message type %q from player %s", msg.Type, client.PlayerID)
		return nil
	}
}

func errorMessage(err error) ws.WSMessage {
	return ws.WSMessage{Type: "error", Data: gin.H{"error": err.Error()}}
}

// writeTo writes directly to a socket that is not yet in the hub.
func (h *WSHandler) writeTo(conn *websocket.Conn, message ws.WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("ws: write error: %v", err)
	}
}
