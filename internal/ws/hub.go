package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one live connection bound to a (session, player) pair.
type Client struct {
	conn      *websocket.Conn
	SessionID uint
	PlayerID  string
	alive     bool
}

// Hub routes outbound messages to the connections of each session and
// liveness-checks them. Writes go through the hub lock so a connection never
// sees concurrent writers.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uint]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[uint]map[*Client]bool),
	}
}

// Add binds a connection to a session and player and registers it for
// broadcasts.
func (h *Hub) Add(sessionID uint, playerID string, conn *websocket.Conn) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := &Client{conn: conn, SessionID: sessionID, PlayerID: playerID, alive: true}
	conn.SetPongHandler(func(string) error {
		h.mu.Lock()
		client.alive = true
		h.mu.Unlock()
		return nil
	})

	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*Client]bool)
	}
	h.sessions[sessionID][client] = true
	log.Printf("ws: player %s connected to session %d (total: %d)", playerID, sessionID, len(h.sessions[sessionID]))
	return client
}

func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)
}

// Detach unregisters a connection without closing it, so it can be rebound
// to another session.
func (h *Hub) Detach(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.sessions[client.SessionID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.sessions, client.SessionID)
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	if conns, ok := h.sessions[client.SessionID]; ok {
		delete(conns, client)
		client.conn.Close()
		if len(conns) == 0 {
			delete(h.sessions, client.SessionID)
		}
		log.Printf("ws: player %s disconnected from session %d", client.PlayerID, client.SessionID)
	}
}

func (h *Hub) Broadcast(sessionID uint, message WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for client := range conns {
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			h.removeLocked(client)
		}
	}
}

// SendToPlayer delivers a message to every connection a player holds in the
// session.
func (h *Hub) SendToPlayer(sessionID uint, playerID string, message WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for client := range conns {
		if client.PlayerID != playerID {
			continue
		}
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			h.removeLocked(client)
		}
	}
}

// StartHeartbeat pings every connection on the given interval and closes any
// that failed to pong since the previous probe. Closing makes the read pump
// fail, which runs its normal cleanup path. Returns a stop function.
func (h *Hub) StartHeartbeat(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				h.probe()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

func (h *Hub) probe() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conns := range h.sessions {
		for client := range conns {
			if !client.alive {
				log.Printf("ws: player %s in session %d missed heartbeat, closing", client.PlayerID, client.SessionID)
				h.removeLocked(client)
				continue
			}
			client.alive = false
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.removeLocked(client)
			}
		}
	}
}
