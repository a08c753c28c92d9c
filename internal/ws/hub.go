package ws

import (
	"context"
	"encoding/json"
	"sync"

	"taskhub/internal/domain"
	"taskhub/internal/logger"
	"taskhub/internal/service"
	"taskhub/internal/view"
)

// Hub pushes the board's list to every connected client after each round
// trip.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	board   *service.Board
}

func NewHub(board *service.Board) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		board:   board,
	}
}

// Start subscribes to the board and forwards its snapshots until ctx is
// done, then closes all clients.
func (h *Hub) Start(ctx context.Context) {
	updates, cancel := h.board.Subscribe()
	go h.run(ctx, updates, cancel)
}

func (h *Hub) run(ctx context.Context, updates <-chan []domain.Task, cancel func()) {
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case tasks, ok := <-updates:
			if !ok {
				h.closeAll()
				return
			}
			h.Broadcast(tasks)
		}
	}
}

// Register adds c and queues the current list for it.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	msg, err := encodeTasks(h.board.Tasks())
	if err != nil {
		logger.Error("failed to encode tasks for ws", "error", err)
		msg = encodeError("could not encode task list")
	}
	c.offer(msg)
	n := len(h.clients)
	h.mu.Unlock()

	logger.Debug("ws client registered", "clients", n)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(tasks []domain.Task) {
	msg, err := encodeTasks(tasks)
	if err != nil {
		logger.Error("failed to encode tasks for ws", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.offer(msg) {
			logger.Debug("ws client behind, dropped stale update")
		}
	}
}

// sendTo queues msg for c if it is still registered.
func (h *Hub) sendTo(c *Client, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; ok {
		c.offer(msg)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.Send)
	}
}

func encodeError(message string) []byte {
	msg, _ := json.Marshal(ErrorPayload{Type: MsgError, Message: message})
	return msg
}

func encodeTasks(tasks []domain.Task) ([]byte, error) {
	sorted := view.Sorted(tasks)
	return json.Marshal(TasksPayload{Type: MsgTasks, Count: len(sorted), Tasks: sorted})
}
