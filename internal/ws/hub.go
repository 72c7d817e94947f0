package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Fahad602/Dash-KanBan/internal/domain"
	pkglogger "github.com/Fahad602/Dash-KanBan/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "ideaboard:board"

// EventBoardChanged is sent after every committed board mutation
const EventBoardChanged = "board_changed"

// Event represents a real-time event sent via WebSocket
type Event struct {
	Type    string      `json:"type"`    // "board_changed"
	Payload interface{} `json:"payload"` // event-specific data
}

// relayMessage wraps an event published to the other instances
type relayMessage struct {
	Origin string          `json:"origin"`
	Event  json.RawMessage `json:"event"`
}

// Hub manages WebSocket clients and broadcasts board changes to all of them
type Hub struct {
	clients map[*Client]bool

	// Register/unregister channels
	register   chan *Client
	unregister chan *Client

	// Serialized events for every client
	broadcast chan []byte

	mu          sync.RWMutex
	redisClient *redis.Client
	instanceID  string
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub creates a new Hub. redisClient may be nil for a single instance.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte, 256),
		redisClient: redisClient,
		instanceID:  uuid.NewString(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// slow consumer
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// Broadcast sends an event to every local client and publishes it to the
// other instances through Redis
func (h *Hub) Broadcast(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		pkglogger.GetLogger().Error().Err(err).Str("type", event.Type).Msg("ws event marshal failed")
		return
	}

	h.broadcastLocal(data)

	if h.redisClient != nil {
		relay, err := json.Marshal(relayMessage{Origin: h.instanceID, Event: data})
		if err != nil {
			return
		}
		h.redisClient.Publish(h.ctx, redisPubSubChannel, relay) //nolint:errcheck
	}
}

// PublishChange forwards a committed board change to subscribers
func (h *Hub) PublishChange(_ context.Context, change domain.BoardChange) {
	h.Broadcast(&Event{Type: EventBoardChanged, Payload: change})
}

func (h *Hub) broadcastLocal(data []byte) {
	select {
	case h.broadcast <- data:
	case <-h.ctx.Done():
	}
}

// subscribeRedis listens for board changes from other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			// Only local broadcast (don't re-publish to Redis)
			if data, ok := h.relayPayload(msg.Payload); ok {
				h.broadcastLocal(data)
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// relayPayload unwraps a relayed event. Messages this instance published
// itself were already delivered locally and are skipped.
func (h *Hub) relayPayload(payload string) ([]byte, bool) {
	var msg relayMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil || len(msg.Event) == 0 {
		pkglogger.GetLogger().Warn().Err(err).Msg("ws relay message dropped")
		return nil, false
	}
	if msg.Origin == h.instanceID {
		return nil, false
	}
	return msg.Event, true
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
