package playback

import (
	"github.com/llehouerou/lanshelf/internal/lyrics"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/session"
)

// View is a consistent snapshot of the controller for rendering.
type View struct {
	State        State
	Token        session.Token
	Item         *media.Item
	Position     float64
	Volume       float64
	Playlist     []media.Item
	PlaylistKind media.Kind
	Index        int
	HasNext      bool
	HasPrevious  bool
	Shuffle      bool
	Loop         bool
	Lyrics       *lyrics.Lyrics
	LyricIndex   int
	Hint         string
	Error        string
	Transcoding  bool
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	pl := c.sess.Playlist()
	v := View{
		State:        c.state,
		Token:        c.sess.Token(),
		Volume:       c.player.Volume(),
		Playlist:     pl.Items(),
		PlaylistKind: pl.Kind(),
		Index:        pl.Index(),
		HasNext:      pl.HasNext(),
		HasPrevious:  pl.HasPrevious(),
		Shuffle:      c.shuffle,
		Loop:         c.loop,
		Lyrics:       c.cursor.Lyrics(),
		LyricIndex:   c.cursor.Active(),
		Hint:         c.hint,
		Error:        c.errMsg,
		Transcoding:  c.transcoding,
	}
	if it, ok := c.sess.Current(); ok {
		v.Item = &it
		if it.Kind.Timed() && c.state.HasMedia() {
			v.Position = c.player.Position()
		}
	}
	return v
}
