package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches an upgraded connection to the hub as a watcher of caseId.
func ServeWs(hub *Hub, c *websocket.Conn, caseId string) {
	client := &Client{Hub: hub, Conn: c, CaseId: caseId, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // runs in the handler goroutine
}
