package storage

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Background is a KV that hands saves to a single writer goroutine so
// callers never wait on disk. Pending writes are coalesced per key: only the
// latest value of a key is written. Loads observe pending writes.
type Background struct {
	kv     KV
	logger *log.Logger

	// writeMu serializes flushes so a key is never written out of order.
	writeMu  sync.Mutex
	mu       sync.Mutex
	pending  map[string][]byte
	inflight map[string][]byte
	closed   bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// NewBackground starts the writer goroutine. Close must be called to flush.
func NewBackground(kv KV, logger *log.Logger) *Background {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Background{
		kv:      kv,
		logger:  logger,
		pending: make(map[string][]byte),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go b.run()
	return b
}

// Save queues data for key. After Close it writes through synchronously.
func (b *Background) Save(key string, data []byte) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return b.saveDirect(key, data)
	}
	b.pending[key] = append([]byte{}, data...)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
	return nil
}

// saveDirect writes through once the writer is stopping. It waits for any
// flush still in progress and drops an older queued value for key, so the
// final flush cannot overwrite data with a stale copy.
func (b *Background) saveDirect(key string, data []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	b.mu.Lock()
	delete(b.pending, key)
	b.mu.Unlock()
	return b.kv.Save(key, data)
}

// Load returns the newest value for key, pending or stored.
func (b *Background) Load(key string) ([]byte, error) {
	b.mu.Lock()
	if v, ok := b.pending[key]; ok {
		b.mu.Unlock()
		return append([]byte{}, v...), nil
	}
	if v, ok := b.inflight[key]; ok {
		b.mu.Unlock()
		return append([]byte{}, v...), nil
	}
	b.mu.Unlock()
	return b.kv.Load(key)
}

// Flush blocks until every write queued before the call has been attempted.
func (b *Background) Flush() {
	b.flush()
}

// Close flushes pending writes and stops the writer. It is safe to call more than once.
func (b *Background) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	close(b.quit)
	<-b.done
	return nil
}

func (b *Background) run() {
	defer close(b.done)
	for {
		select {
		case <-b.wake:
			b.flush()
		case <-b.quit:
			b.flush()
			return
		}
	}
}

// flush writes pending batches until none are left. b.mu is released while
// writing so Save never blocks on the underlying store; inflight keeps the
// batch visible to Load in the meantime.
func (b *Background) flush() {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.pending) > 0 {
		batch := b.pending
		b.pending = make(map[string][]byte)
		b.inflight = batch
		b.mu.Unlock()

		for key, data := range batch {
			if err := b.kv.Save(key, data); err != nil {
				b.logger.Warn("background save failed", "key", key, "err", err)
			}
		}

		b.mu.Lock()
		b.inflight = nil
	}
}
