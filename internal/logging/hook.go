package logging

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	hookBuffer  = 64
	sendTimeout = 5 * time.Second
)

// RemoteSender delivers a log line to the media host.
type RemoteSender interface {
	Log(ctx context.Context, level, msg string) error
}

type remoteLine struct {
	level string
	msg   string
}

// Hook forwards warnings and errors to a RemoteSender.
// Fire never blocks: lines are dropped when the buffer is full.
type Hook struct {
	sender  RemoteSender
	lines   chan remoteLine
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	closed  bool
	dropped int
}

// NewHook starts the forwarding goroutine.
func NewHook(sender RemoteSender) *Hook {
	h := &Hook{
		sender: sender,
		lines:  make(chan remoteLine, hookBuffer),
		done:   make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (h *Hook) Fire(entry *logrus.Entry) error {
	if skip, _ := entry.Data[SkipRemote].(bool); skip {
		return nil
	}
	line := remoteLine{level: entry.Level.String(), msg: entry.Message}
	if c, ok := entry.Data["component"].(string); ok && c != "" {
		line.msg = c + ": " + line.msg
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	select {
	case h.lines <- line:
	default:
		h.dropped++
	}
	return nil
}

// Dropped returns the number of lines discarded because the buffer was full.
func (h *Hook) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close stops forwarding after the buffered lines are sent.
func (h *Hook) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.lines)
		h.mu.Unlock()
	})
	<-h.done
}

func (h *Hook) run() {
	defer close(h.done)
	for line := range h.lines {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		// Failures are not logged, that would feed the hook again.
		_ = h.sender.Log(ctx, line.level, line.msg)
		cancel()
	}
}
