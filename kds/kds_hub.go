package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/delight-cuisine/utils"
)

// Event types
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventMenuUpdated        = "menu_updated"
	EventRestaurantStatus   = "restaurant_status"
)

const writeWait = 5 * time.Second

type Message struct {
	Event  string      `json:"event"`
	Data   interface{} `json:"data"`
	SentAt time.Time   `json:"sent_at"`
}

type client struct {
	userID uint
	// gorilla allows one concurrent writer per connection
	writeMu sync.Mutex
}

// Hub fans events out to the connected admin dashboards.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// Register adds a connection owned by userID.
func (h *Hub) Register(conn *websocket.Conn, userID uint) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = &client{userID: userID}
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish broadcasts an event. Clients whose write fails are dropped.
// Writes happen outside the registry lock so a slow client only delays
// its own deliveries.
func (h *Hub) Publish(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data, SentAt: time.Now().UTC()})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s event: %v", event, err)
		return
	}

	h.mutex.Lock()
	snapshot := make(map[*websocket.Conn]*client, len(h.clients))
	for conn, cl := range h.clients {
		snapshot[conn] = cl
	}
	h.mutex.Unlock()

	delivered := 0
	for conn, cl := range snapshot {
		if err := cl.write(conn, payload); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"event":   event,
				"user_id": cl.userID,
			}).Printf("Dropping dashboard client: %v", err)
			h.Unregister(conn)
			continue
		}
		delivered++
	}
	utils.InfoLogger.Debugf("Broadcast %s to %d clients", event, delivered)
}

func (cl *client) write(conn *websocket.Conn, payload []byte) error {
	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
