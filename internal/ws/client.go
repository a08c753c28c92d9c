package ws

import (
	"time"

	"taskhub/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 16
)

// Client is one websocket subscriber. The feed is server → client only;
// anything the client sends is read and discarded to keep pongs flowing.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		Conn: conn,
		Send: make(chan []byte, sendBuffer),
		Hub:  hub,
	}
}

// Run starts the writer, sends the ready handshake, registers with the hub
// and blocks until the connection closes.
func (c *Client) Run() {
	go c.writePump()

	c.enqueue([]byte(`{"type":"` + MsgReady + `"}`))
	c.Hub.Register(c)

	c.readPump()
}

// enqueue never blocks; it reports false when the buffer is full.
func (c *Client) enqueue(msg []byte) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// offer queues msg, dropping the oldest queued frames while the buffer is
// full. It reports whether anything was dropped.
func (c *Client) offer(msg []byte) (dropped bool) {
	for !c.enqueue(msg) {
		select {
		case <-c.Send:
			dropped = true
		default:
		}
	}
	return dropped
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "error", err)
			}
			return
		}
		// the feed only flows server to client
		c.Hub.sendTo(c, encodeError("feed is read-only"))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn("ws write error", "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
