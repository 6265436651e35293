package netmodule

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

// Listen starts an HTTP server on address:port that upgrades every
// request to a WebSocket connection, returning the server's id. Accepted
// connections are tracked the same way dialed ones are, so Send/Receive/
// Close work uniformly regardless of which side initiated the connection.
func (h *Hub) Listen(address string, port int) (string, error) {
	h.mu.Lock()
	id := h.newID("ws_server")
	h.mu.Unlock()

	srv := &Server{
		ID:      id,
		Address: address,
		Port:    port,
		clients: make(map[string]*Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		conn, err := srv.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		h.mu.Lock()
		clientID := h.newID("ws_client")
		h.mu.Unlock()

		wsConn := &Conn{ID: clientID, conn: conn, isServer: true, messagesCh: make(chan []byte, 100)}

		srv.mu.Lock()
		srv.clients[clientID] = wsConn
		srv.mu.Unlock()

		h.mu.Lock()
		h.conns[clientID] = wsConn
		h.mu.Unlock()

		go wsConn.readLoop()
	}

	srv.server = &http.Server{Addr: fmt.Sprintf("%s:%d", address, port), Handler: http.HandlerFunc(handler)}
	go srv.server.ListenAndServe()

	h.mu.Lock()
	h.servers[id] = srv
	h.mu.Unlock()
	return id, nil
}

// StopServer shuts down a listening server without affecting already
// accepted connections (which remain closable via Close).
func (h *Hub) StopServer(id string) error {
	h.mu.Lock()
	srv, ok := h.servers[id]
	if ok {
		delete(h.servers, id)
	}
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("netmodule: server %q not found", id)
	}
	return srv.server.Close()
}
