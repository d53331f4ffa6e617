package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans live-session points out to websocket watchers. With a redis
// client attached, broadcasts also cross process boundaries so any API
// instance can serve the watch socket.
type Hub struct {
	redis    *redis.Client
	watchers map[string]map[*Watcher]struct{}
	mu       sync.RWMutex
}

// Watcher is one websocket viewer of a live session.
type Watcher struct {
	SessionID string
	Send      chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:    redisClient,
		watchers: map[string]map[*Watcher]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(sessionID string) *Watcher {
	w := &Watcher{
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[sessionID] == nil {
		h.watchers[sessionID] = map[*Watcher]struct{}{}
	}
	h.watchers[sessionID][w] = struct{}{}
	return w
}

func (h *Hub) Unregister(w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessionWatchers, ok := h.watchers[w.SessionID]; ok {
		delete(sessionWatchers, w)
		if len(sessionWatchers) == 0 {
			delete(h.watchers, w.SessionID)
		}
	}
	close(w.Send)
}

// Broadcast delivers a payload to local watchers of a session and, when
// redis is wired, publishes it for other instances. Slow watchers drop
// messages rather than block the sender.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	h.mu.RLock()
	watchers := h.watchers[sessionID]
	h.mu.RUnlock()

	for w := range watchers {
		select {
		case w.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), liveChannel(sessionID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	// pattern subscribe: one subscription covers every live session
	pubsub := h.redis.PSubscribe(ctx, "live:*:points")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		sessionID := sessionIDFromChannel(msg.Channel)
		h.mu.RLock()
		watchers := h.watchers[sessionID]
		h.mu.RUnlock()
		for w := range watchers {
			select {
			case w.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func liveChannel(sessionID string) string {
	return "live:" + sessionID + ":points"
}

func sessionIDFromChannel(ch string) string {
	// live:{session}:points
	const prefix = "live:"
	const suffix = ":points"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
