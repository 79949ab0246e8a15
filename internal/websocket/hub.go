package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"deposit-defender-be/internal/pkg/logger"
	"deposit-defender-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const progressChannel = "download_progress_events"

// Hub fans download progress out to the clients watching a case. A case can
// have several open tabs; each gets every update. Redis pubsub relays events
// between instances so the watcher and the downloader need not share one.
type Hub struct {
	// caseId -> watching clients
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.CaseId] = append(h.clients[client.CaseId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"case_id": client.CaseId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.CaseId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.CaseId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.CaseId]) == 0 {
					delete(h.clients, client.CaseId)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishProgress pushes a case's download state to its local watchers and
// relays it through redis for watchers connected to other instances.
func (h *Hub) PublishProgress(caseId string, state store.DownloadState) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "download_progress",
		"case_id": caseId,
		"data":    state,
	})

	h.deliver(caseId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"case_id": caseId,
			"message": json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), progressChannel, payload)
	}
}

func (h *Hub) deliver(caseId string, data []byte) {
	h.mu.RLock()
	clients := h.clients[caseId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// The unregister branch owns closing Send; closing here too
			// would panic the hub on the second close.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection",
				map[string]interface{}{"case_id": caseId})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, progressChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			CaseId  string          `json:"case_id"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("redis progress event parse error: %v", err)
			continue
		}
		h.deliver(payload.CaseId, payload.Message)
	}
}
