// Package uiloop is the single execution context a dashboard view mutates
// its display state on. Workers hand results over with Post.
package uiloop

import (
	"sync"
)

// Poster accepts work for the UI context.
type Poster interface {
	// Post queues f. It returns false when the loop is closed and f will never run.
	Post(f func()) bool
}

type Loop struct {
	mailbox chan func()
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		mailbox: make(chan func(), buffer),
		done:    make(chan struct{}),
	}
}

// Run drains the mailbox on the calling goroutine until Close.
func (l *Loop) Run() {
	for {
		select {
		case f := <-l.mailbox:
			f()
		case <-l.done:
			return
		}
	}
}

func (l *Loop) Post(f func()) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.mailbox <- f:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop. Queued work that has not started is dropped.
func (l *Loop) Close() {
	l.once.Do(func() {
		close(l.done)
		l.mu.Lock()
		l.closed = true
		l.mu.Unlock()
	})
}
