package player

import (
	"context"
	"io"
)

// Interface is the media element driven by the playback controller.
type Interface interface {
	// Load detaches the current source and starts loading url. Ready or
	// Error follows on Events.
	Load(url string)
	Play()
	Pause()
	Paused() bool
	// Seek moves to sec seconds. It is a no-op until Ready.
	Seek(sec float64)
	Position() float64
	// CanPlayType answers "probably", "maybe" or "".
	CanPlayType(mime string) string
	SetVolume(v float64)
	Volume() float64
	// Reset detaches the source; pending loads are dropped.
	Reset()
	Events() <-chan Event
	Close() error
}

// Opener fetches a stream by URL.
type Opener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, string, error)
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
