package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Sends never
// block; a subscriber that falls behind misses events.
type Subscription struct {
	SelectionChanged <-chan SelectionChange
	StateChanged     <-chan StateChange
	PlaylistChanged  <-chan PlaylistChange
	ModeChanged      <-chan ModeChange
	LyricsChanged    <-chan LyricsChange
	HintChanged      <-chan HintChange
	Error            <-chan ErrorEvent
	Done             <-chan struct{}

	selectionCh chan SelectionChange
	stateCh     chan StateChange
	playlistCh  chan PlaylistChange
	modeCh      chan ModeChange
	lyricsCh    chan LyricsChange
	hintCh      chan HintChange
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		selectionCh: make(chan SelectionChange, eventBufferSize),
		stateCh:     make(chan StateChange, eventBufferSize),
		playlistCh:  make(chan PlaylistChange, eventBufferSize),
		modeCh:      make(chan ModeChange, eventBufferSize),
		lyricsCh:    make(chan LyricsChange, eventBufferSize),
		hintCh:      make(chan HintChange, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.SelectionChanged = s.selectionCh
	s.StateChanged = s.stateCh
	s.PlaylistChanged = s.playlistCh
	s.ModeChanged = s.modeCh
	s.LyricsChanged = s.lyricsCh
	s.HintChanged = s.hintCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func send[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func (s *Subscription) sendSelection(e SelectionChange) { send(s.selectionCh, e) }

func (s *Subscription) sendState(e StateChange) { send(s.stateCh, e) }

func (s *Subscription) sendPlaylist(e PlaylistChange) { send(s.playlistCh, e) }

func (s *Subscription) sendMode(e ModeChange) { send(s.modeCh, e) }

func (s *Subscription) sendLyrics(e LyricsChange) { send(s.lyricsCh, e) }

func (s *Subscription) sendHint(e HintChange) { send(s.hintCh, e) }

func (s *Subscription) sendError(e ErrorEvent) { send(s.errorCh, e) }
