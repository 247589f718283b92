package realtime

import "github.com/gofiber/websocket/v2"

// DisplayHub fans queue updates out to connected waiting-room displays.
// A single broadcaster goroutine owns the client map, so no locking.
type DisplayHub struct {
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	Clients    map[*websocket.Conn]bool
}

var Display = DisplayHub{
	Register:   make(chan *websocket.Conn),
	Unregister: make(chan *websocket.Conn),
	Broadcast:  make(chan []byte),
	Clients:    make(map[*websocket.Conn]bool),
}

func RunDisplayBroadcaster() {
	for {
		select {
		case c := <-Display.Register:
			Display.Clients[c] = true
		case c := <-Display.Unregister:
			delete(Display.Clients, c)
			c.Close()
		case msg := <-Display.Broadcast:
			for c := range Display.Clients {
				c.WriteMessage(websocket.TextMessage, msg)
			}
		}
	}
}
