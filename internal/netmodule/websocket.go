// Package netmodule exposes WebSocket client/server operations as native
// builtin functions, wiring github.com/gorilla/websocket the same way
// the teacher's internal/network/websocket.go does.
//
// Grounded directly on websocket.go's WebSocketConn/WebSocketServer
// shapes and its dial/send/receive/close/ping method bodies; renamed
// from "WebSocketModule" methods on a NetworkModule god-object to a
// standalone Hub, since this repo has no equivalent NetworkModule to
// hang them off of.
package netmodule

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is an active WebSocket connection, client or server-accepted.
type Conn struct {
	ID         string
	URL        string
	conn       *websocket.Conn
	isServer   bool
	mu         sync.Mutex
	closed     bool
	messagesCh chan []byte
}

// Server is a listening WebSocket endpoint.
type Server struct {
	ID       string
	Address  string
	Port     int
	upgrader websocket.Upgrader
	server   *http.Server
	mu       sync.RWMutex
	clients  map[string]*Conn
}

// Hub tracks every connection and server this module has created.
type Hub struct {
	mu      sync.RWMutex
	conns   map[string]*Conn
	servers map[string]*Server
	nextID  int64
}

// NewHub constructs an empty WebSocket hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*Conn), servers: make(map[string]*Server)}
}

func (h *Hub) newID(prefix string) string {
	h.nextID++
	return fmt.Sprintf("%s_%d", prefix, h.nextID)
}

// Connect dials url and returns the new connection's id.
func (h *Hub) Connect(url string) (string, error) {
	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return "", fmt.Errorf("netmodule: dial %q failed: %w", url, err)
	}

	h.mu.Lock()
	id := h.newID("ws")
	h.mu.Unlock()

	wsConn := &Conn{ID: id, URL: url, conn: conn, messagesCh: make(chan []byte, 100)}
	go wsConn.readLoop()

	h.mu.Lock()
	h.conns[id] = wsConn
	h.mu.Unlock()
	return id, nil
}

func (h *Hub) get(id string) (*Conn, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[id]
	if !ok {
		return nil, fmt.Errorf("netmodule: connection %q not found", id)
	}
	return conn, nil
}

// Send writes a text message.
func (h *Hub) Send(id, message string) error {
	conn, err := h.get(id)
	if err != nil {
		return err
	}
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if conn.closed {
		return fmt.Errorf("netmodule: connection %q is closed", id)
	}
	return conn.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// SendBinary writes a binary message.
func (h *Hub) SendBinary(id string, data []byte) error {
	conn, err := h.get(id)
	if err != nil {
		return err
	}
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if conn.closed {
		return fmt.Errorf("netmodule: connection %q is closed", id)
	}
	return conn.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Receive waits up to timeout for the next message.
func (h *Hub) Receive(id string, timeout time.Duration) (string, error) {
	conn, err := h.get(id)
	if err != nil {
		return "", err
	}
	select {
	case msg, ok := <-conn.messagesCh:
		if !ok {
			return "", fmt.Errorf("netmodule: connection %q closed", id)
		}
		return string(msg), nil
	case <-time.After(timeout):
		return "", fmt.Errorf("netmodule: receive timed out on %q", id)
	}
}

// Ping sends a WebSocket ping frame.
func (h *Hub) Ping(id string) error {
	conn, err := h.get(id)
	if err != nil {
		return err
	}
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if conn.closed {
		return fmt.Errorf("netmodule: connection %q is closed", id)
	}
	return conn.conn.WriteMessage(websocket.PingMessage, []byte{})
}

// Close closes and forgets a connection.
func (h *Hub) Close(id string) error {
	h.mu.Lock()
	conn, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
	}
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("netmodule: connection %q not found", id)
	}

	conn.mu.Lock()
	conn.closed = true
	conn.mu.Unlock()

	conn.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return conn.conn.Close()
}

func (c *Conn) readLoop() {
	defer close(c.messagesCh)
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()

		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.closed = true
			c.mu.Unlock()
			return
		}
		if msgType == websocket.TextMessage || msgType == websocket.BinaryMessage {
			select {
			case c.messagesCh <- message:
			default:
				<-c.messagesCh
				c.messagesCh <- message
			}
		}
	}
}
