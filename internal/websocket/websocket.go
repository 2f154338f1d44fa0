// Package websocket pushes live tally updates to connected browser
// panels so results reflect a just-cast vote without a page reload.
package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ejoven/halalan/internal/logger"
	"github.com/ejoven/halalan/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // kiosk and panels share the local origin
	},
}

// TallyProvider supplies the current results snapshot for new clients.
type TallyProvider interface {
	Results() []models.TallyEntry
}

// Hub maintains the set of active clients and broadcasts messages to
// them.
type Hub struct {
	log        logger.Logger
	clients    map[*Client]bool
	broadcast  chan models.WSMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	tally      TallyProvider
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan models.WSMessage
}

// New creates a new Hub.
func New(log logger.Logger, tally TallyProvider) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.WSMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		tally:      tally,
	}
}

// Start begins the hub's main loop in a goroutine.
func (h *Hub) Start() {
	go h.run()
}

// run handles client registration/unregistration and broadcasting.
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.log.Debug("panel connected", "total_clients", len(h.clients))

			// New panels get the current snapshot immediately.
			go func() {
				client.send <- models.WSMessage{
					Type:    "tally_updated",
					Payload: h.tally.Results(),
				}
			}()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			h.log.Debug("panel disconnected", "total_clients", len(h.clients))

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastMessage sends a message to all connected panels.
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	h.broadcast <- models.WSMessage{
		Type:    msgType,
		Payload: payload,
	}
}

// BroadcastTally implements services.Broadcaster.
func (h *Hub) BroadcastTally(entries []models.TallyEntry) {
	h.BroadcastMessage("tally_updated", entries)
}

// ClientCount returns the number of connected panels.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// ServeWs upgrades an HTTP request to a websocket connection and
// registers the client with the hub.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan models.WSMessage, 16),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// writePump forwards hub messages to the websocket connection.
func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteJSON(message); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; panels only listen. Its job is to
// notice the connection closing.
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
