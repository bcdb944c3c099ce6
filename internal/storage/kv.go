package storage

import (
	"strings"
	"sync"
)

// KV is a byte-oriented key/value store. Load returns nil data for a missing key.
type KV interface {
	Save(key string, data []byte) error
	Load(key string) ([]byte, error)
}

// Memory is an in-process KV. The zero value is ready to use.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save stores a copy of data under key.
func (m *Memory) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte{}, data...)
	return nil
}

// Load returns a copy of the value under key.
func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

// Keys returns the stored keys with the given prefix.
func (m *Memory) Keys(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

type namespace struct {
	kv     KV
	prefix string
}

// Namespace returns a KV that prefixes every key, isolating one player's
// saved state inside a shared store.
func Namespace(kv KV, prefix string) KV {
	return namespace{kv: kv, prefix: prefix}
}

func (n namespace) Save(key string, data []byte) error {
	return n.kv.Save(n.prefix+key, data)
}

func (n namespace) Load(key string) ([]byte, error) {
	return n.kv.Load(n.prefix + key)
}
