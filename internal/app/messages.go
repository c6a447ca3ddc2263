// Package app contains the browser model and its messages.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lanshelf/internal/media"
)

// Message category interfaces for type-based routing in Update().

// PlaybackMessage is implemented by messages from the playback controller.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// ListingMessage is implemented by messages about the host listing.
type ListingMessage interface {
	tea.Msg
	listingMessage()
}

// TickMsg is sent periodically to refresh the position in the player bar.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// PlaybackEventMsg carries one controller event: a SelectionChange,
// StateChange, PlaylistChange, ModeChange, LyricsChange, HintChange or
// ErrorEvent.
type PlaybackEventMsg struct {
	Event any
}

func (PlaybackEventMsg) playbackMessage() {}

// PlaybackClosedMsg is sent when the controller subscription ends.
type PlaybackClosedMsg struct{}

func (PlaybackClosedMsg) playbackMessage() {}

// ListingMsg is the result of a listing load.
type ListingMsg struct {
	Listing *media.Listing
	Changed bool
	Initial bool
	Err     error
}

func (ListingMsg) listingMessage() {}

// ListingUpdateMsg carries a listing that changed while the host scans.
type ListingUpdateMsg struct {
	Listing *media.Listing
}

func (ListingUpdateMsg) listingMessage() {}

// PollDoneMsg is sent when scan polling stops.
type PollDoneMsg struct{}

func (PollDoneMsg) listingMessage() {}

// StderrMsg is a line written to fd 2 by the native audio backend.
type StderrMsg string
