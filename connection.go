package main

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// PlayerInput holds the latest steering signal from the client. Only the
// most recent value matters; the game loop samples it once per tick.
type PlayerInput struct {
	Angle float64
	Boost bool
	Valid bool // false until the first input message arrives
}

// Conn manages a single WebSocket player session
type Conn struct {
	ID     string
	Name   string
	ws     *websocket.Conn
	input  PlayerInput
	mu     sync.Mutex // protects input and ws writes
	closed bool
}

// NewConn creates a new connection wrapper
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID: uuid.New().String(),
		ws: ws,
	}
}

// Send serializes msg to JSON and writes it to the WebSocket
func (c *Conn) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// GetInput returns the current input snapshot
func (c *Conn) GetInput() PlayerInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// setInput updates input under lock
func (c *Conn) setInput(angle float64, boost bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = PlayerInput{Angle: angle, Boost: boost, Valid: true}
}

// Close marks connection closed
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.ws.Close()
}

// ConnManager tracks the active player connection. The simulation hosts a
// single player-controlled snake, so at most one connection is registered at
// a time; late arrivals are rejected at the upgrade handler.
type ConnManager struct {
	mu     sync.RWMutex
	active *Conn
}

// NewConnManager creates an empty connection manager
func NewConnManager() *ConnManager {
	return &ConnManager{}
}

// Add registers the connection. Returns false if a player is already active.
func (m *ConnManager) Add(c *Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return false
	}
	m.active = c
	return true
}

// Remove unregisters the connection if it is the active one
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil && m.active.ID == id {
		m.active = nil
	}
}

// Active returns the current player connection, or nil
func (m *ConnManager) Active() *Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// ReadLoop handles incoming messages for a connection until it disconnects.
// Compact protocol: single-char "t" field for message type.
//   "j" = join, "i" = input, "r" = respawn
// onJoin is called when a join/respawn message is received.
// onDisconnect is called when the connection closes.
func (c *Conn) ReadLoop(
	onJoin func(conn *Conn, name string),
	onDisconnect func(conn *Conn),
) {
	defer func() {
		onDisconnect(c)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", c.ID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("bad message from %s: %v", c.ID, err)
			continue
		}

		switch msg.Type {
		case MsgJoin, MsgRespawn: // "j" or "r"
			name := msg.Name
			if name == "" {
				name = "Player"
			}
			c.Name = name
			onJoin(c, name)

		case MsgInput: // "i"
			c.setInput(msg.Angle, msg.Boost == 1)
		}
	}
}
