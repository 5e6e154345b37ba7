package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"news-portal-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// wsClient implements realtime.Client by wrapping a websocket connection.
// gorilla connections allow one concurrent writer, so sends are serialized.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

func (c *wsClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait))
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The feed is public and read-only; allow upgrade from any origin
		return true
	},
}

// LiveFeed handles GET /ws?topic=<category>
// It upgrades the connection and subscribes it to publish events for the topic
// (every category when topic is omitted).
func (h *Handler) LiveFeed(c *gin.Context) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		topic = realtime.TopicAll
	}
	if topic != realtime.TopicAll {
		if _, err := h.news.Category(c.Request.Context(), topic); err != nil {
			h.fail(c, err, "Category not found")
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &wsClient{conn: conn}
	h.hub.Register(topic, client)
	h.logger.Debug().Str("topic", topic).Int("subscribers", h.hub.Subscribers(topic)).Msg("feed subscriber joined")

	// Heartbeat: send periodic pings; close on error
	pingTicker := time.NewTicker(pingPeriod)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				if err := client.ping(); err != nil {
					// ping failed; reader loop will exit on next error
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
		h.hub.Unregister(topic, client)
		client.Close()
	}()

	// Reader loop: drain messages and keep connection alive via pong handler
	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			// Normal close or error; exit loop
			return
		}
	}
}
