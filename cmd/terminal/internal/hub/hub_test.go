package hub_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/hub"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/protocol"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/testutils"
)

var validSymbols = []string{"USD_JPY", "BTC_JPY", "BTC_USD"}

func setup(t *testing.T) (*hub.Hub, *testutils.MockClient, *testutils.MockView) {
	t.Helper()
	view := testutils.NewMockView()
	h := hub.NewHub(func(hub.ClientInterface) (hub.View, error) { return view, nil }, validSymbols, zap.NewNop())
	client := testutils.NewMockClient("c1")
	if err := h.Register(client); err != nil {
		t.Fatalf("register: %v", err)
	}
	return h, client, view
}

func TestHub_Subscribe_Success(t *testing.T) {
	h, client, view := setup(t)

	req := protocol.WSRequest{
		Action:  "subscribe",
		Payload: protocol.RequestPayload{Symbols: []string{"BTC_USD"}},
		ID:      "req-1",
	}

	h.HandleCommand(client, req)

	if client.LastMsgType() != "ack" {
		t.Errorf("Expected ack, got %s", client.LastMsgType())
	}
	if !view.Watched["BTC_USD"] {
		t.Errorf("Expected view to watch BTC_USD")
	}
	if h.Watchers("BTC_USD") != 1 {
		t.Errorf("Expected 1 watcher, got %d", h.Watchers("BTC_USD"))
	}
}

func TestHub_Subscribe_MixedValidity(t *testing.T) {
	h, client, view := setup(t)

	req := protocol.WSRequest{
		Action:  "subscribe",
		Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY", "DOGE_JPY"}},
		ID:      "req-2",
	}

	h.HandleCommand(client, req)

	lastMsg := client.Messages[len(client.Messages)-1]
	if lastMsg.Status != "success" {
		t.Errorf("Expected success for partial valid subscription")
	}
	if !strings.Contains(lastMsg.Message, "USD_JPY") {
		t.Errorf("Response should contain accepted symbol USD_JPY")
	}
	if strings.Contains(lastMsg.Message, "DOGE_JPY") {
		t.Errorf("Response should NOT contain invalid symbol")
	}
	if view.Watched["DOGE_JPY"] {
		t.Errorf("Invalid symbol reached the view")
	}
}

func TestHub_Subscribe_Idempotency(t *testing.T) {
	h, client, view := setup(t)
	req := protocol.WSRequest{
		Action: "subscribe", Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY"}},
	}

	h.HandleCommand(client, req)
	h.HandleCommand(client, req)

	if view.WatchCalls != 1 {
		t.Errorf("View should be told once per unique symbol, got %d", view.WatchCalls)
	}
	if h.Watchers("USD_JPY") != 1 {
		t.Errorf("Expected 1 watcher, got %d", h.Watchers("USD_JPY"))
	}
	if client.LastMsgType() != "error" {
		t.Errorf("Repeated subscribe should report no new symbols")
	}
}

func TestHub_Unsubscribe_Logic(t *testing.T) {
	h, client, view := setup(t)

	h.HandleCommand(client, protocol.WSRequest{
		Action: "subscribe", Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY", "BTC_USD"}},
	})

	h.HandleCommand(client, protocol.WSRequest{
		Action: "unsubscribe", Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY"}},
	})

	if view.Watched["USD_JPY"] {
		t.Errorf("View should stop watching USD_JPY")
	}
	if !view.Watched["BTC_USD"] {
		t.Errorf("View should still watch BTC_USD")
	}
	if h.Watchers("USD_JPY") != 0 {
		t.Errorf("USD_JPY should have no watchers")
	}
}

func TestHub_Unsubscribe_NotSubscribed(t *testing.T) {
	h, client, _ := setup(t)

	h.HandleCommand(client, protocol.WSRequest{
		Action: "unsubscribe", Payload: protocol.RequestPayload{Symbols: []string{"BTC_JPY"}},
		ID: "err-check",
	})

	lastMsg := client.Messages[len(client.Messages)-1]
	if lastMsg.Type != "error" {
		t.Errorf("Expected error response for unsubscribing non-watched symbol")
	}
}

func TestHub_UnsubscribeAll(t *testing.T) {
	h, client, view := setup(t)

	h.HandleCommand(client, protocol.WSRequest{
		Action: "subscribe", Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY", "BTC_USD"}},
	})

	h.HandleCommand(client, protocol.WSRequest{Action: "unsubscribe_all"})

	if len(view.Watched) != 0 {
		t.Errorf("View should watch nothing after unsubscribe_all")
	}
	if h.Watchers("USD_JPY")+h.Watchers("BTC_USD") != 0 {
		t.Errorf("Watcher counts should be zero after unsubscribe_all")
	}
}

func TestHub_Resize(t *testing.T) {
	h, client, view := setup(t)

	h.HandleCommand(client, protocol.WSRequest{
		Action: "resize", Payload: protocol.RequestPayload{Width: 1280, Height: 720},
	})
	h.HandleCommand(client, protocol.WSRequest{
		Action: "resize", Payload: protocol.RequestPayload{Width: 0, Height: 720},
	})

	if len(view.Resizes) != 1 || view.Resizes[0] != [2]int{1280, 720} {
		t.Errorf("Expected one 1280x720 resize, got %v", view.Resizes)
	}
	if client.LastMsgType() != "error" {
		t.Errorf("Zero width should be rejected")
	}
}

func TestHub_UnknownAction(t *testing.T) {
	h, client, _ := setup(t)

	h.HandleCommand(client, protocol.WSRequest{Action: "buy"})

	if client.LastMsgType() != "error" {
		t.Errorf("Expected error for unknown action")
	}
}

func TestHub_UnregisteredClient(t *testing.T) {
	h, _, _ := setup(t)
	stranger := testutils.NewMockClient("c2")

	h.HandleCommand(stranger, protocol.WSRequest{
		Action: "subscribe", Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY"}},
	})

	if stranger.LastMsgType() != "error" {
		t.Errorf("Expected error for unregistered client")
	}
}

func TestHub_RegisterFailure(t *testing.T) {
	h := hub.NewHub(func(hub.ClientInterface) (hub.View, error) {
		return nil, errors.New("no fetcher")
	}, validSymbols, zap.NewNop())

	if err := h.Register(testutils.NewMockClient("c1")); err == nil {
		t.Errorf("Expected register to fail")
	}
	if h.Clients() != 0 {
		t.Errorf("Failed register must not leave a view behind")
	}
}

func TestHub_Unregister_ClosesView(t *testing.T) {
	h, client, view := setup(t)
	h.HandleCommand(client, protocol.WSRequest{
		Action: "subscribe", Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY"}},
	})

	h.Unregister(client)

	if !view.Closed || !client.Closed {
		t.Errorf("Unregister should close both view and client")
	}
	if h.Watchers("USD_JPY") != 0 || h.Clients() != 0 {
		t.Errorf("Unregister should drop all state for the client")
	}
}

func TestHub_RaceCondition(t *testing.T) {
	// Run with `go test -race ./...`
	h, client, _ := setup(t)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		h.HandleCommand(client, protocol.WSRequest{Action: "subscribe", Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY"}}})
	}()
	go func() {
		defer wg.Done()
		h.HandleCommand(client, protocol.WSRequest{Action: "unsubscribe", Payload: protocol.RequestPayload{Symbols: []string{"USD_JPY"}}})
	}()
	go func() {
		defer wg.Done()
		h.Unregister(client)
	}()
	wg.Wait()
}
