package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mattbolt/math-hack/internal/services"
	"github.com/mattbolt/math-hack/internal/storage"
	"github.com/mattbolt/math-hack/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newWSServer(t *testing.T) (*httptest.Server, *services.GameManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub()
	manager := services.NewGameManager(storage.NewMemoryStore(), hub, false)

	r := gin.New()
	r.GET("/ws", NewWSHandler(hub, manager).HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, manager
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) ws.WSMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var msg ws.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode frame %q: %v", data, err)
	}
	return msg
}

func sendFrame(t *testing.T, conn *websocket.Conn, frame map[string]interface{}) {
	t.Helper()
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func TestJoinSessionSnapshotThenRoster(t *testing.T) {
	srv, manager := newWSServer(t)

	session, _, err := manager.CreateSession("alice", "Alice", 4, 5)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	conn := dialWS(t, srv)
	sendFrame(t, conn, map[string]interface{}{
		"type": "joinSession", "sessionId": session.ID, "playerId": "alice",
	})

	if msg := readFrame(t, conn); msg.Type != services.MsgGameState {
		t.Fatalf("first frame should be the state snapshot, got %q", msg.Type)
	}
	if msg := readFrame(t, conn); msg.Type != services.MsgPlayerJoined {
		t.Fatalf("roster broadcast should follow the snapshot, got %q", msg.Type)
	}
}

func TestJoinUnknownSessionKeepsConnectionUsable(t *testing.T) {
	srv, manager := newWSServer(t)

	session, _, err := manager.CreateSession("alice", "Alice", 4, 5)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	conn := dialWS(t, srv)
	sendFrame(t, conn, map[string]interface{}{
		"type": "joinSession", "sessionId": 9999, "playerId": "alice",
	})
	if msg := readFrame(t, conn); msg.Type != "error" {
		t.Fatalf("expected error frame, got %q", msg.Type)
	}

	// The rejection must leave the socket open for a valid bind.
	sendFrame(t, conn, map[string]interface{}{
		"type": "joinSession", "sessionId": session.ID, "playerId": "alice",
	})
	if msg := readFrame(t, conn); msg.Type != services.MsgGameState {
		t.Fatalf("expected state snapshot after valid join, got %q", msg.Type)
	}
}

// A failed rebind attempt on an already-bound connection must be reported
// without unbinding it: the client keeps its session and keeps receiving
// broadcasts on the same socket.
func TestRebindFailureKeepsBinding(t *testing.T) {
	srv, manager := newWSServer(t)

	session, _, err := manager.CreateSession("alice", "Alice", 4, 5)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	conn := dialWS(t, srv)
	sendFrame(t, conn, map[string]interface{}{
		"type": "joinSession", "sessionId": session.ID, "playerId": "alice",
	})
	readFrame(t, conn) // gameState
	readFrame(t, conn) // playerJoined

	sendFrame(t, conn, map[string]interface{}{
		"type": "joinSession", "sessionId": 9999, "playerId": "alice",
	})
	if msg := readFrame(t, conn); msg.Type != "error" {
		t.Fatalf("expected error frame for failed rebind, got %q", msg.Type)
	}

	// Still registered in the hub under the original session.
	sendFrame(t, conn, map[string]interface{}{"type": "toggleReady"})
	if msg := readFrame(t, conn); msg.Type != services.MsgPlayerUpdated {
		t.Fatalf("expected playerUpdated broadcast after rebind failure, got %q", msg.Type)
	}
}
