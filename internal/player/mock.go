package player

import "sync"

// Mock is a test double for Player. It records calls and lets tests inject
// events; it never emits on its own.
type Mock struct {
	mu       sync.Mutex
	events   chan Event
	loads    []string
	seeks    []float64
	plays    int
	pauses   int
	resets   int
	paused   bool
	position float64
	volume   float64
	playable map[string]string
	closed   bool
}

// NewMock creates a mock that can play every audio and video MIME type.
func NewMock() *Mock {
	return &Mock{
		events: make(chan Event, eventBuffer),
		paused: true,
		volume: 1,
	}
}

func (m *Mock) Load(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, url)
	m.paused = true
	m.position = 0
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays++
	m.paused = false
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauses++
	m.paused = true
}

func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Mock) Seek(sec float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks = append(m.seeks, sec)
	m.position = sec
}

func (m *Mock) Position() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) CanPlayType(mime string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playable == nil {
		return "probably"
	}
	return m.playable[mime]
}

func (m *Mock) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clampLevel(v)
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
	m.paused = true
	m.position = 0
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Test helpers

// Emit queues ev on the event channel.
func (m *Mock) Emit(ev Event) {
	m.events <- ev
}

// SetPlayable restricts CanPlayType to the given answers.
func (m *Mock) SetPlayable(answers map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playable = answers
}

func (m *Mock) SetPosition(sec float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = sec
}

func (m *Mock) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = paused
}

func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loads...)
}

func (m *Mock) Seeks() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.seeks...)
}

func (m *Mock) Plays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

func (m *Mock) Pauses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauses
}

func (m *Mock) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
