package storage

import (
	"errors"
	"runtime"
	"sort"
	"sync"
	"testing"
)

func TestMemory(t *testing.T) {
	var m Memory

	if data, err := m.Load("x"); err != nil || data != nil {
		t.Fatalf("Load(x) = %q, %v; want nil, nil", data, err)
	}

	buf := []byte("abc")
	m.Save("x", buf)
	buf[0] = 'z'

	data, _ := m.Load("x")
	if string(data) != "abc" {
		t.Errorf("Load(x) = %q, want abc (Save must copy)", data)
	}
	data[0] = 'q'
	if again, _ := m.Load("x"); string(again) != "abc" {
		t.Errorf("Load returned shared slice")
	}
}

func TestNamespace(t *testing.T) {
	m := NewMemory()
	alice := Namespace(m, "user:alice/")
	bob := Namespace(m, "user:bob/")

	alice.Save("best-score", []byte("128"))
	bob.Save("best-score", []byte("64"))

	if data, _ := alice.Load("best-score"); string(data) != "128" {
		t.Errorf("alice best = %q", data)
	}
	if data, _ := bob.Load("best-score"); string(data) != "64" {
		t.Errorf("bob best = %q", data)
	}

	keys := m.Keys("user:")
	sort.Strings(keys)
	want := []string{"user:alice/best-score", "user:bob/best-score"}
	if len(keys) != 2 || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}

// countingKV records how often each key reaches the underlying store.
type countingKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes map[string]int
	gate   chan struct{}
	hook   func(key string, data []byte)
	err    error
}

func newCountingKV() *countingKV {
	return &countingKV{data: map[string][]byte{}, writes: map[string]int{}}
}

func (c *countingKV) Save(key string, data []byte) error {
	if c.gate != nil {
		<-c.gate
	}
	if c.hook != nil {
		c.hook(key, data)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = data
	c.writes[key]++
	return nil
}

func (c *countingKV) Load(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func TestBackgroundFlushesOnClose(t *testing.T) {
	kv := newCountingKV()
	bg := NewBackground(kv, nil)

	bg.Save("a", []byte("1"))
	bg.Save("b", []byte("2"))
	bg.Save("a", []byte("3"))

	if err := bg.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if string(kv.data["a"]) != "3" || string(kv.data["b"]) != "2" {
		t.Errorf("stored = %q", kv.data)
	}
	if err := bg.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestBackgroundCoalescesPendingWrites(t *testing.T) {
	kv := newCountingKV()
	kv.gate = make(chan struct{})
	bg := NewBackground(kv, nil)

	// The first write blocks in the store; the rest queue behind it.
	bg.Save("k", []byte("0"))
	for _, v := range []string{"1", "2", "3", "4"} {
		bg.Save("k", []byte(v))
	}

	if data, _ := bg.Load("k"); string(data) != "4" {
		t.Errorf("Load() = %q, want pending value 4", data)
	}

	close(kv.gate)
	bg.Close()

	if string(kv.data["k"]) != "4" {
		t.Errorf("stored %q, want 4", kv.data["k"])
	}
	if n := kv.writes["k"]; n > 2 {
		t.Errorf("key written %d times, want at most 2", n)
	}
}

func TestBackgroundLoadFallsThrough(t *testing.T) {
	kv := newCountingKV()
	kv.data["stored"] = []byte("disk")
	bg := NewBackground(kv, nil)
	defer bg.Close()

	if data, _ := bg.Load("stored"); string(data) != "disk" {
		t.Errorf("Load() = %q, want disk", data)
	}
	if data, _ := bg.Load("missing"); data != nil {
		t.Errorf("Load(missing) = %q, want nil", data)
	}
}

func TestBackgroundSaveErrorsAreDropped(t *testing.T) {
	kv := newCountingKV()
	kv.err = errors.New("disk full")
	bg := NewBackground(kv, nil)

	if err := bg.Save("k", []byte("v")); err != nil {
		t.Errorf("Save() = %v, want nil", err)
	}
	bg.Flush()
	if err := bg.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestBackgroundWritesThroughAfterClose(t *testing.T) {
	kv := newCountingKV()
	bg := NewBackground(kv, nil)
	bg.Close()

	if err := bg.Save("late", []byte("v")); err != nil {
		t.Fatalf("Save() after Close = %v", err)
	}
	if string(kv.data["late"]) != "v" {
		t.Error("write after Close was not stored")
	}
}

func TestBackgroundSaveDuringCloseKeepsNewest(t *testing.T) {
	kv := newCountingKV()
	stalled := make(chan struct{})
	release := make(chan struct{})
	kv.hook = func(_ string, data []byte) {
		if string(data) == "old" {
			close(stalled)
			<-release
		}
	}
	bg := NewBackground(kv, nil)

	bg.Save("k", []byte("old"))
	<-stalled

	closed := make(chan struct{})
	go func() {
		bg.Close()
		close(closed)
	}()
	for {
		bg.mu.Lock()
		c := bg.closed
		bg.mu.Unlock()
		if c {
			break
		}
		runtime.Gosched()
	}

	saved := make(chan error, 1)
	go func() { saved <- bg.Save("k", []byte("new")) }()

	close(release)
	<-closed
	if err := <-saved; err != nil {
		t.Fatalf("Save() during Close = %v", err)
	}

	if got := string(kv.data["k"]); got != "new" {
		t.Errorf("stored %q, want new", got)
	}
}
