package realtime

import "sync"

// MemoryFeed is an in-process Feed backed by a channel. It backs the demo
// mode and every test that drives a board session without a backend.
type MemoryFeed struct {
	changes chan Change

	mu     sync.Mutex
	err    error
	closed bool
}

// NewMemoryFeed creates a MemoryFeed with a small delivery buffer.
func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{changes: make(chan Change, 16)}
}

// Push delivers a change to the subscriber. Pushing to a closed feed is a no-op.
func (f *MemoryFeed) Push(c Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.changes <- c
}

// Fail terminates the feed with an error, as a dropped connection would.
func (f *MemoryFeed) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.err = err
	f.closed = true
	close(f.changes)
}

func (f *MemoryFeed) Changes() <-chan Change {
	return f.changes
}

func (f *MemoryFeed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *MemoryFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.changes)
	}
	return nil
}
