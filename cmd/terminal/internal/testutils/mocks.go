package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/clock"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/protocol"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// MockClient simulates a connected websocket client
type MockClient struct {
	IDVal    string
	Messages []protocol.WSResponse // Stores decoded JSON messages
	Closed   bool
	Mu       sync.Mutex
}

func NewMockClient(id string) *MockClient {
	return &MockClient{IDVal: id, Messages: make([]protocol.WSResponse, 0)}
}

func (m *MockClient) ID() string { return m.IDVal }

func (m *MockClient) Close() {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Closed = true
}

func (m *MockClient) SendJSON(v interface{}) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	// If it's a response, store it
	if resp, ok := v.(protocol.WSResponse); ok {
		m.Messages = append(m.Messages, resp)
	}
}

func (m *MockClient) LastMsgType() string {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1].Type
}

// ByType returns a copy of the messages of the given type, oldest first.
func (m *MockClient) ByType(typ string) []protocol.WSResponse {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	var out []protocol.WSResponse
	for _, msg := range m.Messages {
		if msg.Type == typ {
			out = append(out, msg)
		}
	}
	return out
}

// InlinePoster runs posted work on the caller's goroutine.
type InlinePoster struct {
	Mu     sync.Mutex
	Closed bool
	Posts  int
}

func (p *InlinePoster) Post(f func()) bool {
	p.Mu.Lock()
	if p.Closed {
		p.Mu.Unlock()
		return false
	}
	p.Posts++
	p.Mu.Unlock()
	f()
	return true
}

// MockClock is a manual clock. Timers fire only from Advance, each on its
// own goroutine like time.AfterFunc.
type MockClock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	now     time.Time
	nextID  int
	pending map[int]*mockTimer
}

type mockTimer struct {
	c  *MockClock
	id int
	at time.Time
	f  func()
}

func NewMockClock(start time.Time) *MockClock {
	c := &MockClock{now: start, pending: make(map[int]*mockTimer)}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	t := &mockTimer{c: c, id: c.nextID, at: c.now.Add(d), f: f}
	c.pending[t.id] = t
	c.cond.Broadcast()
	return t
}

func (t *mockTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if _, ok := t.c.pending[t.id]; !ok {
		return false
	}
	delete(t.c.pending, t.id)
	t.c.cond.Broadcast()
	return true
}

// Advance moves the clock forward and fires every timer that came due, in
// deadline order.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*mockTimer
	for id, t := range c.pending {
		if !t.at.After(c.now) {
			due = append(due, t)
			delete(c.pending, id)
		}
	}
	c.cond.Broadcast()
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		go t.f()
	}
}

// BlockUntil waits until exactly n timers are pending.
func (c *MockClock) BlockUntil(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.pending) != n {
		c.cond.Wait()
	}
}

// Pending reports how many timers are armed.
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// StubFetcher returns Batches in order, repeating the last one. Calls whose
// zero-based index is set in Panics panic instead.
type StubFetcher struct {
	Mu      sync.Mutex
	Batches []models.QuoteBatch
	Panics  map[int]bool
	calls   int
}

func (f *StubFetcher) Fetch(ctx context.Context) models.QuoteBatch {
	f.Mu.Lock()
	i := f.calls
	f.calls++
	fail := f.Panics[i]
	var b models.QuoteBatch
	if n := len(f.Batches); n > 0 {
		b = f.Batches[min(i, n-1)]
	}
	f.Mu.Unlock()

	if fail {
		panic("stub fetch failure")
	}
	return b
}

func (f *StubFetcher) Calls() int {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	return f.calls
}

// MockView records what a hub asked of a client's view.
type MockView struct {
	Mu         sync.Mutex
	Watched    map[string]bool
	Resizes    [][2]int
	WatchCalls int
	Closed     bool
}

func NewMockView() *MockView { return &MockView{Watched: make(map[string]bool)} }

func (v *MockView) Watch(symbols []string) {
	v.Mu.Lock()
	defer v.Mu.Unlock()
	v.WatchCalls++
	for _, s := range symbols {
		v.Watched[s] = true
	}
}

func (v *MockView) Unwatch(symbols []string) {
	v.Mu.Lock()
	defer v.Mu.Unlock()
	for _, s := range symbols {
		delete(v.Watched, s)
	}
}

func (v *MockView) UnwatchAll() {
	v.Mu.Lock()
	defer v.Mu.Unlock()
	v.Watched = make(map[string]bool)
}

func (v *MockView) Resize(width, height int) {
	v.Mu.Lock()
	defer v.Mu.Unlock()
	v.Resizes = append(v.Resizes, [2]int{width, height})
}

func (v *MockView) Close() {
	v.Mu.Lock()
	defer v.Mu.Unlock()
	v.Closed = true
}
