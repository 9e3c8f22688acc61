package ws

import (
	"log"

	"github.com/gorilla/websocket"
)

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub     *Hub
	channel string
	conn    *websocket.Conn
	send    chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, channel string) *Client {
	return &Client{
		hub:     hub,
		channel: channel,
		conn:    conn,
		send:    make(chan []byte, 256),
	}
}

// Start registers the client and runs its pumps. The read pump only detects
// the peer going away; the UI never sends application messages upstream.
func (c *Client) Start() {
	c.hub.Register(c)
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer c.hub.Unregister(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Unexpected websocket close: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Unable to send message: %v", err)
			return
		}
	}
}
