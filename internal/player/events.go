package player

import "fmt"

type EventType int

const (
	EventReady EventType = iota + 1
	EventPlay
	EventPause
	EventTimeUpdate
	EventSeeking
	EventSeeked
	EventEnded
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventReady:
		return "ready"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventTimeUpdate:
		return "timeupdate"
	case EventSeeking:
		return "seeking"
	case EventSeeked:
		return "seeked"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a signal from the media element. Position is in seconds; Err is
// set for EventError only.
type Event struct {
	Type     EventType
	Position float64
	Err      *MediaError
}

// ErrorCode classifies media element failures.
type ErrorCode int

const (
	CodeUnknown ErrorCode = iota
	CodeAborted
	CodeNetworkOrIO
	CodeDecodeUnsupported
	CodeSourceUnsupported
)

// String returns the user-facing text for the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeAborted:
		return "Aborted"
	case CodeNetworkOrIO:
		return "Network Error"
	case CodeDecodeUnsupported:
		return "Decode Failed"
	case CodeSourceUnsupported:
		return "Source Not Supported"
	default:
		return "Unknown Error"
	}
}

// Label is the metrics label for the code.
func (c ErrorCode) Label() string {
	switch c {
	case CodeAborted:
		return "aborted"
	case CodeNetworkOrIO:
		return "network"
	case CodeDecodeUnsupported:
		return "decode"
	case CodeSourceUnsupported:
		return "source"
	default:
		return "unknown"
	}
}

// MediaError is the error carried by EventError.
type MediaError struct {
	Code ErrorCode
	Err  error
}

func (e *MediaError) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *MediaError) Unwrap() error { return e.Err }
