package playback

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/capability"
	"github.com/llehouerou/lanshelf/internal/errmsg"
	"github.com/llehouerou/lanshelf/internal/lyrics"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/playlist"
	"github.com/llehouerou/lanshelf/internal/progress"
	"github.com/llehouerou/lanshelf/internal/session"
	"github.com/llehouerou/lanshelf/internal/transcode"
)

// Select makes it the current item and returns the new selection token.
// Selecting the current item again is a new selection.
func (c *Controller) Select(it media.Item, opts SelectOptions) session.Token {
	var tok session.Token
	c.do(func() {
		if c.closed {
			return
		}
		tok = c.selectLocked(it, opts)
	})
	return tok
}

func (c *Controller) selectLocked(it media.Item, opts SelectOptions) session.Token {
	c.checkpointLocked()

	var prev *media.Item
	if cur, ok := c.sess.Current(); ok {
		prev = &cur
	}
	tok := c.sess.Select(it)
	c.met.Selection()
	c.log.WithFields(logrus.Fields{
		"id":    it.ID,
		"kind":  it.Kind.String(),
		"token": uint64(tok),
		"user":  opts.User,
	}).Debug("item selected")

	if opts.User && !opts.FromPlaylist && c.cfg.PlaylistEnabled() {
		c.rebuildPlaylistLocked(it)
	}

	c.resetItemLocked()
	c.autoplay = opts.Autoplay
	e := SelectionChange{Token: tok, Item: it, Previous: prev}
	c.each(func(sub *Subscription) { sub.sendSelection(e) })

	remember := c.remember(it.Kind)
	saveSelection := opts.User && !opts.Resume && remember

	if !it.Kind.Timed() {
		c.setStateLocked(StateReady)
		if saveSelection {
			c.saveSelectionLocked(it, nil)
		}
		return tok
	}

	if !c.checker.CanPlayItem(it, c.player) {
		c.failLocked(it, errmsg.Unsupported, nil)
		return tok
	}

	c.transcoding = transcode.Applies(it.Kind, it.Extension(), c.cfg.Kind(it.Kind))
	c.switching = true
	c.player.Load(c.streams.StreamURL(it.ID, 0))
	c.setStateLocked(StateLoading)

	switch it.Kind {
	case media.KindVideo:
		c.probeHintLocked(tok, it, false)
		if saveSelection {
			c.saveSelectionLocked(it, nil)
		}
	case media.KindAudio:
		if it.LyricsID != "" && c.lyricsSrc != nil {
			c.fetchLyricsLocked(tok, it.LyricsID)
		}
		if saveSelection {
			zero := 0.0
			c.saveSelectionLocked(it, &zero)
		}
	}
	return tok
}

// checkpointLocked records the offset of the item being left.
func (c *Controller) checkpointLocked() {
	it, ok := c.sess.Current()
	if !ok || !it.Kind.Timed() || !c.playingOrPausedLocked() || !c.remember(it.Kind) {
		return
	}
	pos := c.player.Position()
	if pos <= 0 {
		return
	}
	c.spawn(func() { c.store.Checkpoint(c.ctx, it.Kind, it.ID, pos) })
}

func (c *Controller) resetItemLocked() {
	c.player.Reset()
	c.seeker.Reset()
	c.transcoding = false
	c.switching = false
	c.resumeAt = 0
	c.errMsg = ""
	if c.cursor != nil {
		c.cursor = nil
		c.each(func(sub *Subscription) { sub.sendLyrics(LyricsChange{Active: -1}) })
	}
	if c.hint != "" {
		c.hint = ""
		c.each(func(sub *Subscription) { sub.sendHint(HintChange{}) })
	}
}

func (c *Controller) saveSelectionLocked(it media.Item, offset *float64) {
	sel := progress.Selection{Kind: it.Kind, ID: it.ID, Offset: offset}
	if pl := c.sess.Playlist(); !pl.Empty() {
		snap := *pl
		sel.Playlist = &snap
	}
	vol := c.player.Volume()
	sel.Volume = &vol
	c.spawn(func() { c.store.SaveSelection(c.ctx, sel) })
}

// failLocked moves the session to the error state with msg.
func (c *Controller) failLocked(it media.Item, msg string, err error) {
	c.player.Reset()
	c.switching = false
	c.errMsg = msg
	c.setStateLocked(StateError)
	e := ErrorEvent{Op: errmsg.OpPlaybackStart, ItemID: it.ID, Message: msg, Err: err}
	c.each(func(sub *Subscription) { sub.sendError(e) })
	c.log.WithFields(logrus.Fields{"id": it.ID, "message": msg}).Warn("playback failed")
}

func (c *Controller) fetchLyricsLocked(tok session.Token, lyricsID string) {
	c.spawn(func() {
		res := c.lyricsSrc.Fetch(c.ctx, lyricsID)
		c.guarded(tok, "lyrics", func() {
			if res.Err != nil {
				c.log.WithError(res.Err).WithField("lyrics_id", lyricsID).Debug("lyrics unavailable")
				return
			}
			c.cursor = lyrics.NewCursor(res.Lyrics)
			c.cursor.Update(secondsToDuration(c.player.Position()), true)
			c.emitLyricsLocked()
		})
	})
}

func (c *Controller) emitLyricsLocked() {
	e := LyricsChange{Lyrics: c.cursor.Lyrics(), Active: c.cursor.Active()}
	c.each(func(sub *Subscription) { sub.sendLyrics(e) })
}

// probeHintLocked fetches the codec hint for a video. With onError set the
// hint is appended to the error message when the item is still failing.
func (c *Controller) probeHintLocked(tok session.Token, it media.Item, onError bool) {
	if c.prober == nil {
		return
	}
	c.spawn(func() {
		c.met.ProbeLookup(c.prober.Cached(it.ID))
		res := c.prober.Probe(c.ctx, it.ID)
		c.guarded(tok, "probe", func() {
			hint := errmsg.WithHint(capability.HintText(res), capability.WarnText(res))
			if hint == "" {
				return
			}
			if onError {
				if c.state != StateError {
					return
				}
				c.errMsg = errmsg.WithHint(c.errMsg, hint)
			}
			c.hint = hint
			c.each(func(sub *Subscription) { sub.sendHint(HintChange{Hint: hint}) })
		})
	})
}

// rebuildPlaylistLocked builds the playlist around it from the listing.
// When it is not among the candidates the playlist holds it alone.
func (c *Controller) rebuildPlaylistLocked(it media.Item) {
	kc := c.cfg.Kind(it.Kind)
	scope, err := playlist.ParseScope(kc.Scope)
	if err != nil {
		scope = playlist.ScopeAll
	}
	res := c.builder.Build(playlist.Request{
		Listing: c.listing,
		Item:    it,
		Kind:    it.Kind,
		Scope:   scope,
		Shuffle: c.shuffleFor(it.Kind),
	})
	pl := playlist.New(it.Kind, []media.Item{it}, 0)
	if res.Index >= 0 {
		pl = playlist.New(it.Kind, res.Items, res.Index)
	}
	pl.SetShuffle(c.shuffleFor(it.Kind))
	pl.SetLoop(c.loopFor(it.Kind))
	c.sess.SetPlaylist(pl)
	c.emitPlaylistLocked()
}

func (c *Controller) loopFor(k media.Kind) bool {
	if k == media.KindAudio {
		return c.loop
	}
	return c.cfg.Kind(k).Loop
}

// PlayAt selects the playlist item at index i.
func (c *Controller) PlayAt(i int, autoplay bool) bool {
	var ok bool
	c.do(func() {
		if c.closed {
			return
		}
		ok = c.playAtLocked(i, SelectOptions{User: true, FromPlaylist: true, Autoplay: autoplay})
	})
	return ok
}

func (c *Controller) playAtLocked(i int, opts SelectOptions) bool {
	pl := c.sess.Playlist()
	if i < 0 || i >= pl.Len() {
		return false
	}
	it, ok := pl.JumpTo(i)
	if !ok {
		return false
	}
	c.emitPlaylistLocked()
	c.selectLocked(it, opts)
	return true
}

// Next selects the following playlist item. It does not wrap.
func (c *Controller) Next() bool {
	return c.step(1)
}

// Previous selects the preceding playlist item. It does not wrap.
func (c *Controller) Previous() bool {
	return c.step(-1)
}

func (c *Controller) step(delta int) bool {
	var ok bool
	c.do(func() {
		if c.closed {
			return
		}
		pl := c.sess.Playlist()
		ok = c.playAtLocked(pl.Index()+delta, SelectOptions{User: true, FromPlaylist: true, Autoplay: true})
	})
	return ok
}

func errorMessage(it media.Item, code fmt.Stringer) string {
	return fmt.Sprintf("Cannot play %s: %s", it.Extension(), code)
}
