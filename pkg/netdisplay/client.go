package netdisplay

import "github.com/gorilla/websocket"

// Client is one connected spectator. Grounded on the teacher's
// pkg/display/web/client.go ReadPump/WritePump shape, trimmed to the
// one message this core sends: a frame payload.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
	}
}

// readPump drains and discards incoming messages until the connection
// fails, then unregisters the client; this display sink never accepts
// input back into the core.
func (c *Client) readPump() {
	defer c.hub.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
