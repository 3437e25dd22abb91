package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/zaikahouse/storefront/models"
)

// Event types
const (
	EventOrderUpdate       = "order_update"
	EventKitchenUpdate     = "kitchen_update"
	EventMenuUpdate        = "menu_update"
	EventOwnerNotification = "owner_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	role   string
	userID uint
}

// Hub holds every connected websocket client: owner dashboards get the
// full kitchen feed, customers only see updates for their own orders.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]client),
}

// RegisterClient adds a connection to the set with its role and user id.
func RegisterClient(conn *websocket.Conn, role string, userID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = client{role: role, userID: userID}
}

// UnregisterClient releases a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate notifies the owner and the order's customer.
func BroadcastOrderUpdate(order models.Order) {
	send(Message{Event: EventOrderUpdate, Data: order}, func(c client) bool {
		return c.role == models.RoleOwner || c.userID == order.CustomerID
	})
}

// BroadcastKitchenUpdate pushes a kitchen queue refresh to owner clients.
func BroadcastKitchenUpdate(data interface{}) {
	send(Message{Event: EventKitchenUpdate, Data: data}, func(c client) bool {
		return c.role == models.RoleOwner
	})
}

// BroadcastMenuUpdate tells every client the catalog changed.
func BroadcastMenuUpdate(menu models.Menu) {
	send(Message{Event: EventMenuUpdate, Data: menu}, func(c client) bool {
		return true
	})
}

// BroadcastOwnerNotification sends a plain message to owner clients.
func BroadcastOwnerNotification(message string) {
	send(Message{Event: EventOwnerNotification, Data: message}, func(c client) bool {
		return c.role == models.RoleOwner
	})
}

func send(msg Message, want func(client) bool) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, cl := range hub.clients {
		if !want(cl) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to %s client: %v", msg.Event, cl.role, err)
		}
	}
}
