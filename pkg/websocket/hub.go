package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub tracks open connections per installer.
type Hub struct {
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.InstallerID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.InstallerID] = set
	}
	set[c] = struct{}{}
	h.logger.Debug("websocket client registered", zap.String("installer_id", c.InstallerID), zap.Int("connections", len(set)))
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(c)
}

// remove must be called with mu held.
func (h *Hub) remove(c *Client) {
	set, ok := h.clients[c.InstallerID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.Send)
	if len(set) == 0 {
		delete(h.clients, c.InstallerID)
	}
}

// Connections reports how many connections an installer has open.
func (h *Hub) Connections(installerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[installerID])
}

// SendToInstaller pushes a message to every connection of the installer. A client whose
// buffer is full is dropped instead of blocking the sender.
func (h *Hub) SendToInstaller(installerID string, messageType string, payload interface{}) error {
	message, err := json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[installerID] {
		select {
		case c.Send <- message:
		default:
			h.logger.Warn("websocket client too slow, dropping connection", zap.String("installer_id", installerID))
			h.remove(c)
		}
	}
	return nil
}
