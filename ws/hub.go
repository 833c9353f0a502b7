package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub tracks open sockets per firebaseId so generation progress can be
// pushed to the requesting user. Delivery is best effort: a full send
// buffer or a missing socket drops the event.
type Hub struct {
	Users map[string]map[*websocket.Conn]*Client
	Mutex sync.RWMutex
}

var H = Hub{
	Users: make(map[string]map[*websocket.Conn]*Client),
}

// GenerationStatusUpdate is pushed as each pipeline stage starts and once
// at the end with status "done" or "error".
type GenerationStatusUpdate struct {
	FirebaseID string `json:"firebase_id"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

func (h *Hub) Register(firebaseID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Users[firebaseID]; !ok {
		h.Users[firebaseID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Users[firebaseID][conn] = client

	go h.readPump(firebaseID, conn)
	go h.writePump(firebaseID, conn)
}

func (h *Hub) Unregister(firebaseID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Users[firebaseID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Users, firebaseID)
		}
	}
}

// BroadcastToUser sends data to every open socket of one user.
func (h *Hub) BroadcastToUser(firebaseID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Users[firebaseID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetStats reports connected users and sockets for the health route.
func (h *Hub) GetStats() map[string]interface{} {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	conns := 0
	for _, clients := range h.Users {
		conns += len(clients)
	}
	return map[string]interface{}{
		"users":       len(h.Users),
		"connections": conns,
	}
}

// SendGenerationStatus pushes one stage event to the requesting user.
func SendGenerationStatus(firebaseID, status, errorMsg string) {
	update := GenerationStatusUpdate{
		FirebaseID: firebaseID,
		Status:     status,
		Error:      errorMsg,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.BroadcastToUser(firebaseID, data)
}

func (h *Hub) readPump(firebaseID string, conn *websocket.Conn) {
	defer h.Unregister(firebaseID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(firebaseID string, conn *websocket.Conn) {
	h.Mutex.RLock()
	client := h.Users[firebaseID][conn]
	h.Mutex.RUnlock()
	if client == nil {
		return
	}
	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
