package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/BeeBeBong/Emenu/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NotifyHub fans payment-request notifications out to every connected
// dashboard so staff see the bell without polling.
type NotifyHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan *entity.Notification
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewNotifyHub() *NotifyHub {
	return &NotifyHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan *entity.Notification, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *NotifyHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case n := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(n); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a notification for every connected client.
func (h *NotifyHub) Broadcast(n *entity.Notification) {
	select {
	case h.broadcast <- n:
	default:
		// a stalled hub must not block the request path
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/notifications (behind the staff auth middleware)
func (h *NotifyHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn
	go h.drain(conn)
}

// drain discards inbound frames and unregisters on close.
func (h *NotifyHub) drain(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
