package player

// State is the media element state.
//
//	Empty ──load──▶ Loading ──ready──▶ Paused ◀──▶ Playing ──end──▶ Ended
//
// Reset returns to Empty from any state. A load failure also returns to
// Empty after the Error event.
type State int

const (
	Empty State = iota
	Loading
	Paused
	Playing
	Ended
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Loading:
		return "Loading"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

// HasSource reports whether a decoded stream is attached.
func (s State) HasSource() bool {
	return s == Paused || s == Playing || s == Ended
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanPlay returns true if Play would start or resume output.
func (s State) CanPlay() bool {
	return s == Paused || s == Loading
}
