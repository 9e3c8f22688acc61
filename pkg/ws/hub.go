package ws

import "context"

type clients map[*Client]bool

type broadcast struct {
	channel string
	message []byte
}

// Hub fans messages out to the clients subscribed to a channel. All map
// mutation happens inside Run, so no locking is needed.
type Hub struct {
	clients  clients
	channels map[string]clients

	register   chan *Client
	unregister chan *Client
	outbound   chan broadcast
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(clients),
		channels:   make(map[string]clients),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan broadcast, 256),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if _, ok := h.channels[client.channel]; !ok {
				h.channels[client.channel] = make(clients)
			}
			h.channels[client.channel][client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.disconnect(client)
			}

		case b := <-h.outbound:
			for client := range h.channels[b.channel] {
				select {
				case client.send <- b.message:
				default:
					// A client that cannot keep up is dropped.
					h.disconnect(client)
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				h.disconnect(client)
			}
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) BroadcastByChannel(channel string, message []byte) {
	h.outbound <- broadcast{channel: channel, message: message}
}

func (h *Hub) disconnect(client *Client) {
	delete(h.clients, client)
	delete(h.channels[client.channel], client)
	close(client.send)
}
