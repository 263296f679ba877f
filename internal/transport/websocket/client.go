package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4/internal/domain"
)

const writeWait = 10 * time.Second

// Client is one browser tab watching a board.
type Client struct {
	conn   *websocket.Conn
	gameID string

	// conn.WriteJSON is not safe for concurrent use
	writeMu sync.Mutex
}

func (c *Client) Send(message any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *Client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ConnectionManager tracks which clients are watching which game.
type ConnectionManager struct {
	clients map[string]map[*Client]struct{} // gameID → clients
	mu      sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) *Client {
	client := &Client{conn: conn, gameID: gameID}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.clients[gameID] == nil {
		cm.clients[gameID] = make(map[*Client]struct{})
	}
	cm.clients[gameID][client] = struct{}{}
	return client
}

func (cm *ConnectionManager) RemoveConnection(client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	watchers, exists := cm.clients[client.gameID]
	if !exists {
		return
	}
	if _, ok := watchers[client]; ok {
		client.conn.Close()
		delete(watchers, client)
	}
	if len(watchers) == 0 {
		delete(cm.clients, client.gameID)
	}
}

// Broadcast sends message to every client watching gameID. Failed writes are
// ignored; the read loop notices the dead socket and cleans it up.
func (cm *ConnectionManager) Broadcast(gameID string, message domain.ServerMessage) {
	cm.mu.RLock()
	watchers := make([]*Client, 0, len(cm.clients[gameID]))
	for c := range cm.clients[gameID] {
		watchers = append(watchers, c)
	}
	cm.mu.RUnlock()

	for _, c := range watchers {
		_ = c.Send(message)
	}
}

// CloseGame disconnects everyone watching gameID.
func (cm *ConnectionManager) CloseGame(gameID string, reason string) {
	cm.mu.Lock()
	watchers := cm.clients[gameID]
	delete(cm.clients, gameID)
	cm.mu.Unlock()

	for c := range watchers {
		_ = c.Send(domain.ServerMessage{Type: "closed", GameID: gameID, Message: reason})
		c.conn.Close()
	}
}

func (cm *ConnectionManager) WatcherCount(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients[gameID])
}
