package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

// NewHandler accepts upgrades from same-host pages and from allowedOrigins.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// HandleWebSocket upgrades GET /ws?game=<id> and subscribes the socket to
// that board.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	session, err := h.SessionManager.GetSession(c.Query("game"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn, session)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, session *game.GameSession) {
	client := h.ConnManager.AddConnection(session.GameID, conn)
	log.Printf("[WS] Client joined game %s", session.GameID)

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.RemoveConnection(client)
		log.Printf("[WS] Client left game %s", session.GameID)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	// an open tab keeps its board alive
	conn.SetPongHandler(func(string) error {
		session.Touch()
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.ping(); err != nil {
					return
				}
			}
		}
	}()

	session.Touch()
	sendState(client, session)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			client.Send(domain.ErrorMessage{Type: "error", Message: "invalid message"})
			continue
		}

		h.processMessage(client, session, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(client *Client, session *game.GameSession, msg domain.ClientMessage) {
	switch msg.Type {
	case "drop":
		if msg.Column == nil {
			client.Send(domain.ErrorMessage{Type: "error", Message: "column is required"})
			return
		}
		// accepted moves reach every watcher through the broadcast
		if _, err := session.HandleDrop(*msg.Column); err != nil {
			client.Send(domain.ErrorMessage{Type: "error", Message: moveErrorMessage(err)})
		}

	case "reset":
		session.Restart()

	case "state":
		session.Touch()
		sendState(client, session)

	default:
		client.Send(domain.ErrorMessage{Type: "error", Message: "unknown message type: " + msg.Type})
	}
}

func sendState(client *Client, session *game.GameSession) {
	view := session.View()
	client.Send(domain.ServerMessage{
		Type:   "state",
		GameID: view.GameID,
		State:  &view.State,
		Colors: view.Colors,
	})
}

func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrColumnFull):
		return "That column is full, pick another one"
	case errors.Is(err, domain.ErrGameAlreadyOver):
		return "The game is over, press start to play again"
	}
	return err.Error()
}
