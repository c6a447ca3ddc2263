package state

import (
	"errors"
	"maps"
	"sync"
)

// ErrMockFailure is returned by a Mock configured to fail.
var ErrMockFailure = errors.New("local store unavailable")

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu       sync.Mutex
	prefs    map[string]string
	progress map[string]float64
	fail     bool
	closed   bool
	writes   int
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{
		prefs:    make(map[string]string),
		progress: make(map[string]float64),
	}
}

func (m *Mock) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", false, ErrMockFailure
	}
	v, ok := m.prefs[key]
	return v, ok, nil
}

func (m *Mock) Set(key, value string) error {
	return m.SetMany(map[string]string{key: value})
}

func (m *Mock) SetMany(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return ErrMockFailure
	}
	maps.Copy(m.prefs, values)
	m.writes++
	return nil
}

func (m *Mock) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.prefs, key)
	return nil
}

func (m *Mock) Progress(itemID string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, false, ErrMockFailure
	}
	v, ok := m.progress[itemID]
	return v, ok, nil
}

func (m *Mock) SaveProgress(itemID string, position float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return ErrMockFailure
	}
	m.progress[itemID] = position
	m.writes++
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetFailing makes every read and write fail.
func (m *Mock) SetFailing(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// Prefs returns a copy of the stored preferences.
func (m *Mock) Prefs() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.prefs)
}

// Writes returns the number of successful write calls.
func (m *Mock) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
