package playback

import (
	"github.com/llehouerou/lanshelf/internal/errmsg"
	"github.com/llehouerou/lanshelf/internal/lyrics"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/session"
)

// SelectionChange is emitted for every selection, including selections of
// the same item.
type SelectionChange struct {
	Token    session.Token
	Item     media.Item
	Previous *media.Item
}

// StateChange is emitted when the session state changes.
type StateChange struct {
	Previous State
	Current  State
}

// PlaylistChange is emitted when the playlist is rebuilt, restored or its
// index moves.
type PlaylistChange struct {
	Kind  media.Kind
	Items []media.Item
	Index int
}

// ModeChange is emitted when shuffle or loop changes.
type ModeChange struct {
	Shuffle bool
	Loop    bool
}

// LyricsChange is emitted when lyrics are loaded or reset (Lyrics nil), and
// when the active line moves.
type LyricsChange struct {
	Lyrics *lyrics.Lyrics
	Active int
}

// HintChange carries the advisory codec text for the current video.
type HintChange struct {
	Hint string
}

// ErrorEvent is emitted when the current item cannot be shown.
type ErrorEvent struct {
	Op      errmsg.Op
	ItemID  string
	Message string
	Err     error
}
