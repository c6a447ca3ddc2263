package playback

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/playlist"
	"github.com/llehouerou/lanshelf/internal/progress"
)

// HasResumeCandidate reports whether ResumeLast would select an item.
func (c *Controller) HasResumeCandidate() bool {
	if !c.cfg.ResumeEnabled() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.resumeCandidateLocked()
	return ok
}

func (c *Controller) resumeCandidateLocked() (media.Item, bool) {
	k, id, ok := c.store.LastSelection()
	if !ok || !c.remember(k) {
		return media.Item{}, false
	}
	return c.listing.Find(k, id)
}

// ResumeLast selects the last active item without starting playback and
// restores its playlist and volume. The resume offset is applied once it
// is known: the host offset when positive, else the local one.
func (c *Controller) ResumeLast(ctx context.Context) bool {
	if !c.cfg.ResumeEnabled() {
		return false
	}
	var resumed bool
	c.do(func() {
		if c.closed {
			return
		}
		it, ok := c.resumeCandidateLocked()
		if !ok {
			return
		}
		resumed = true

		if c.cfg.PlaylistEnabled() && !c.restorePlaylistLocked(it) {
			c.rebuildPlaylistLocked(it)
		}
		if vol, ok := c.store.Float(progress.KeyVolume); ok {
			c.player.SetVolume(vol)
		}
		tok := c.selectLocked(it, SelectOptions{Resume: true, FromPlaylist: true})
		c.log.WithFields(logrus.Fields{"id": it.ID, "kind": it.Kind.String()}).Info("resuming last item")

		if !it.Kind.Timed() {
			return
		}
		c.spawn(func() {
			off := c.store.ResumeOffset(ctx, it.Kind, it.ID)
			c.guarded(tok, "resume", func() {
				if off <= 0 {
					return
				}
				if c.state.HasMedia() {
					c.player.Seek(off)
					return
				}
				c.resumeAt = off
			})
		})
	})
	return resumed
}

// restorePlaylistLocked restores the stored playlist when it is of the
// item's kind and still contains it.
func (c *Controller) restorePlaylistLocked(it media.Item) bool {
	snap, ok := c.store.PlaylistSnapshot()
	if !ok || snap.Kind != it.Kind {
		return false
	}
	pl, ok := playlist.Restore(snap, c.listing.ItemsOf(it.Kind))
	if !ok {
		return false
	}
	idx := pl.IndexOf(it.ID)
	if idx < 0 {
		return false
	}
	pl.JumpTo(idx)
	pl.SetShuffle(c.shuffleFor(it.Kind))
	pl.SetLoop(c.loopFor(it.Kind))
	c.sess.SetPlaylist(pl)
	c.emitPlaylistLocked()
	return true
}

// SetShuffle changes audio shuffle and rebuilds the playlist around the
// current audio item.
func (c *Controller) SetShuffle(on bool) {
	c.do(func() {
		if c.closed || c.shuffle == on {
			return
		}
		c.shuffle = on
		c.spawn(func() { c.store.SetFlag(progress.ShuffleKey(media.KindAudio), on) })
		c.emitModeLocked()
		if it, ok := c.sess.Current(); ok && it.Kind == media.KindAudio && c.cfg.PlaylistEnabled() {
			c.rebuildPlaylistLocked(it)
		}
	})
}

// SetLoop changes audio loop. It applies to the current audio playlist.
func (c *Controller) SetLoop(on bool) {
	c.do(func() {
		if c.closed || c.loop == on {
			return
		}
		c.loop = on
		c.spawn(func() { c.store.SetFlag(progress.LoopKey(media.KindAudio), on) })
		if pl := c.sess.Playlist(); pl.Kind() == media.KindAudio {
			pl.SetLoop(on)
		}
		c.emitModeLocked()
	})
}

// TogglePause plays or pauses. An ended item restarts from the beginning.
func (c *Controller) TogglePause() {
	c.do(func() {
		switch c.state {
		case StatePlaying:
			c.player.Pause()
		case StateEnded:
			c.player.Seek(0)
			c.player.Play()
		case StateReady, StatePaused:
			c.player.Play()
		}
	})
}

// SeekTo moves the current item to sec seconds.
func (c *Controller) SeekTo(sec float64) {
	c.do(func() {
		if !c.state.HasMedia() {
			return
		}
		c.player.Seek(max(sec, 0))
	})
}

// SeekBy moves the current item by delta seconds.
func (c *Controller) SeekBy(delta float64) {
	c.do(func() {
		if !c.state.HasMedia() {
			return
		}
		c.player.Seek(max(c.player.Position()+delta, 0))
	})
}

// SetVolume sets and persists the output volume.
func (c *Controller) SetVolume(v float64) {
	c.do(func() {
		c.player.SetVolume(v)
		vol := c.player.Volume()
		c.spawn(func() { c.store.SetFloat(progress.KeyVolume, vol) })
	})
}

// SetRemember overrides whether the last item and offset of kind are kept.
func (c *Controller) SetRemember(k media.Kind, on bool) {
	c.store.SetRemember(k, on)
}

// Remember reports whether the last item and offset of kind are kept.
func (c *Controller) Remember(k media.Kind) bool {
	return c.remember(k)
}
