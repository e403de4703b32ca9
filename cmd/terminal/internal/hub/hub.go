package hub

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/protocol"
)

type ClientInterface interface {
	ID() string
	SendJSON(v interface{})
	Close()
}

// View is the per-connection dashboard a client drives.
type View interface {
	Watch(symbols []string)
	Unwatch(symbols []string)
	UnwatchAll()
	Resize(width, height int)
	Close()
}

// ViewFactory opens the view that renders to client.
type ViewFactory func(client ClientInterface) (View, error)

var ErrNotRegistered = errors.New("hub: client not registered")

type Hub struct {
	subscribers map[string]map[ClientInterface]bool
	clientSubs  map[ClientInterface]map[string]bool
	views       map[ClientInterface]View

	newView      ViewFactory
	validSymbols map[string]bool
	logger       *zap.Logger
	mu           sync.RWMutex
}

func NewHub(newView ViewFactory, validSymbols []string, logger *zap.Logger) *Hub {
	valid := make(map[string]bool, len(validSymbols))
	for _, s := range validSymbols {
		valid[s] = true
	}
	return &Hub{
		subscribers:  make(map[string]map[ClientInterface]bool),
		clientSubs:   make(map[ClientInterface]map[string]bool),
		views:        make(map[ClientInterface]View),
		newView:      newView,
		validSymbols: valid,
		logger:       logger,
	}
}

// Register opens a view for client. It must be called before any command.
func (h *Hub) Register(client ClientInterface) error {
	view, err := h.newView(client)
	if err != nil {
		return fmt.Errorf("open view for %s: %w", client.ID(), err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.views[client]; ok {
		old.Close()
	}
	h.views[client] = view
	h.clientSubs[client] = make(map[string]bool)
	h.logger.Info("Client registered", zap.String("client", client.ID()))
	return nil
}

func (h *Hub) HandleCommand(client ClientInterface, req protocol.WSRequest) {
	h.mu.RLock()
	view, ok := h.views[client]
	h.mu.RUnlock()
	if !ok {
		h.sendError(client, req.ID, ErrNotRegistered.Error())
		return
	}

	switch req.Action {
	case protocol.ActionSubscribe:
		h.handleSubscribe(client, view, req)
	case protocol.ActionUnsubscribe:
		h.handleUnsubscribe(client, view, req)
	case protocol.ActionUnsubscribeAll:
		h.handleUnsubscribeAll(client, view, req)
	case protocol.ActionResize:
		h.handleResize(client, view, req)
	default:
		h.sendError(client, req.ID, "Unknown action: "+req.Action)
	}
}

func (h *Hub) handleSubscribe(client ClientInterface, view View, req protocol.WSRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.clientSubs[client]
	if !ok {
		h.sendError(client, req.ID, ErrNotRegistered.Error())
		return
	}

	var valid []string
	for _, s := range req.Payload.Symbols {
		if h.validSymbols[s] {
			// Idempotency: Ignore if already subscribed
			if subs[s] {
				continue
			}
			valid = append(valid, s)
		}
	}

	if len(valid) == 0 {
		h.sendError(client, req.ID, "No valid/new symbols provided")
		return
	}

	for _, sym := range valid {
		subs[sym] = true
		if h.subscribers[sym] == nil {
			h.subscribers[sym] = make(map[ClientInterface]bool)
		}
		h.subscribers[sym][client] = true
	}

	h.sendAck(client, req.ID, "success", fmt.Sprintf("Subscribed to %v", valid))
	view.Watch(valid)
}

func (h *Hub) handleUnsubscribe(client ClientInterface, view View, req protocol.WSRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var removed []string
	subs := h.clientSubs[client]
	for _, sym := range req.Payload.Symbols {
		if subs[sym] {
			delete(subs, sym)
			h.dropSubscriber(sym, client)
			removed = append(removed, sym)
		}
	}

	if len(removed) > 0 {
		view.Unwatch(removed)
		h.sendAck(client, req.ID, "success", fmt.Sprintf("Unsubscribed from %v", removed))
	} else {
		h.sendError(client, req.ID, fmt.Sprintf("Not subscribed to: %v", req.Payload.Symbols))
	}
}

func (h *Hub) handleUnsubscribeAll(client ClientInterface, view View, req protocol.WSRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.clientSubs[client]
	if !ok {
		h.sendError(client, req.ID, ErrNotRegistered.Error())
		return
	}
	for sym := range subs {
		h.dropSubscriber(sym, client)
	}
	// Clear the map but keep the client registered
	h.clientSubs[client] = make(map[string]bool)
	view.UnwatchAll()
	h.sendAck(client, req.ID, "success", "Unsubscribed from all symbols")
}

func (h *Hub) handleResize(client ClientInterface, view View, req protocol.WSRequest) {
	w, ht := req.Payload.Width, req.Payload.Height
	if w <= 0 || ht <= 0 {
		h.sendError(client, req.ID, fmt.Sprintf("Invalid chart size %dx%d", w, ht))
		return
	}
	view.Resize(w, ht)
	h.sendAck(client, req.ID, "success", fmt.Sprintf("Resized to %dx%d", w, ht))
}

// Unregister closes the client's view and the client itself.
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sym := range h.clientSubs[client] {
		h.dropSubscriber(sym, client)
	}
	delete(h.clientSubs, client)
	if view, ok := h.views[client]; ok {
		view.Close()
		delete(h.views, client)
	}
	client.Close()
}

// Watchers reports how many clients watch symbol.
func (h *Hub) Watchers(symbol string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[symbol])
}

// Clients reports how many views are open.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.views)
}

// Shutdown closes every view and client.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]ClientInterface, 0, len(h.views))
	for c := range h.views {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.Unregister(c)
	}
}

func (h *Hub) dropSubscriber(symbol string, client ClientInterface) {
	delete(h.subscribers[symbol], client)
	if len(h.subscribers[symbol]) == 0 {
		delete(h.subscribers, symbol)
	}
}

func (h *Hub) sendAck(c ClientInterface, id, status, msg string) {
	c.SendJSON(protocol.WSResponse{Type: protocol.TypeAck, ID: id, Status: status, Message: msg})
}

func (h *Hub) sendError(c ClientInterface, id, msg string) {
	c.SendJSON(protocol.WSResponse{Type: protocol.TypeError, ID: id, Message: msg})
}
