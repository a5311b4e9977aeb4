package ws

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans chat messages out to every open socket of a session. The chat
// widget and the admin back-office both join the same session channel.
type Hub struct {
	sessions   map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.sessions[client.sessionID] == nil {
				h.sessions[client.sessionID] = make(map[*Client]struct{})
			}
			h.sessions[client.sessionID][client] = struct{}{}
			h.mu.Unlock()
			slog.Info("Chat client registered", "session", client.sessionID)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.sessions[client.sessionID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.sessions, client.sessionID)
					}
				}
			}
			h.mu.Unlock()
			slog.Info("Chat client unregistered", "session", client.sessionID)
		}
	}
}

// Broadcast sends a payload to every client of a session. Clients that can't
// keep up are dropped rather than blocking the sender.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.sessions[sessionID] {
		select {
		case client.send <- payload:
		default:
			delete(h.sessions[sessionID], client)
			close(client.send)
		}
	}
}

// ServeHTTP upgrades the connection and attaches it to the session given in
// the query string. Mounted into the router through the net/http adaptor.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session is required", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection", "err", err)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, 16), sessionID: sessionID}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames (messages arrive over REST) but keeps the
// connection's control-frame handling alive and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
