package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KilimcininKorOglu/treelab/internal/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Feed clients never send payloads; anything larger is a protocol error.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans tree states out to WebSocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*feedClient]struct{}
	buffer  int
	logger  logging.Logger
	closed  bool
}

type feedClient struct {
	id   string
	send chan FeedMessage
	done chan struct{}
	once sync.Once
}

// NewHub creates a hub whose clients buffer at most buffer states.
func NewHub(buffer int, logger logging.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		clients: make(map[*feedClient]struct{}),
		buffer:  buffer,
		logger:  logger,
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every client.
func (h *Hub) Broadcast(msg FeedMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.offer(msg)
	}
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		c.stop()
		delete(h.clients, c)
	}
}

// register adds a client and queues its first state. It fails once the hub
// is closed.
func (h *Hub) register(c *feedClient, initial FeedMessage) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	c.offer(initial)
	return true
}

func (h *Hub) unregister(c *feedClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.stop()
}

// serve upgrades the request and runs the client until it disconnects.
// join must register the client together with its first state, so that no
// broadcast falls between the two.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, join func(c *feedClient) bool) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.logger.Debug("feed upgrade failed", "error", err)
		return
	}

	c := &feedClient{
		id:   RequestID(r),
		send: make(chan FeedMessage, h.buffer),
		done: make(chan struct{}),
	}
	if !join(c) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}
	h.logger.Debug("feed client connected", "request_id", c.id)

	go h.writePump(conn, c)
	h.readPump(conn, c)
}

// offer queues msg, discarding the oldest queued state when the buffer is
// full so the newest state is always delivered. Callers hold the hub lock,
// which makes them the only producer.
func (c *feedClient) offer(msg FeedMessage) {
	for {
		select {
		case c.send <- msg:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

func (c *feedClient) stop() {
	c.once.Do(func() { close(c.done) })
}

// readPump drains control frames and notices when the peer goes away.
func (h *Hub) readPump(conn *websocket.Conn, c *feedClient) {
	defer func() {
		h.unregister(c)
		h.logger.Debug("feed client disconnected", "request_id", c.id)
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("feed read failed", "request_id", c.id, "error", err)
			}
			return
		}
	}
}

// writePump owns all writes to conn.
func (h *Hub) writePump(conn *websocket.Conn, c *feedClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("feed write failed", "request_id", c.id, "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
