package playback

// State is the session state machine:
//
//	Idle ─select─▶ Loading ─ready─▶ Ready ─play─▶ Playing ◀─▶ Paused
//	                  │                              │
//	                  └──────────▶ Error ◀───────────┴──▶ Ended
//
// Every selection starts over from Loading. Images go straight to Ready.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateEnded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateEnded:
		return "Ended"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// HasMedia reports whether a source is attached and seekable.
func (s State) HasMedia() bool {
	return s == StateReady || s == StatePlaying || s == StatePaused || s == StateEnded
}
