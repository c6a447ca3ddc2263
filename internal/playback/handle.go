package playback

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/errmsg"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/player"
)

// HandleEvent applies a media element event to the session.
func (c *Controller) HandleEvent(ev player.Event) {
	c.do(func() {
		if c.closed {
			return
		}
		it, ok := c.sess.Current()
		if !ok || !it.Kind.Timed() {
			return
		}
		switch ev.Type {
		case player.EventReady:
			c.onReady(it)
		case player.EventPlay:
			c.setStateLocked(StatePlaying)
		case player.EventPause:
			if c.state == StatePlaying {
				c.setStateLocked(StatePaused)
			}
			c.checkpointAt(it, ev.Position)
		case player.EventTimeUpdate:
			c.onTimeUpdate(it, ev.Position)
		case player.EventSeeking:
			c.onSeeking(it, ev.Position)
		case player.EventSeeked:
			if _, changed := c.cursor.Update(secondsToDuration(ev.Position), true); changed {
				c.emitLyricsLocked()
			}
		case player.EventEnded:
			c.onEnded(it)
		case player.EventError:
			c.onError(it, ev.Err)
		}
	})
}

func (c *Controller) onReady(it media.Item) {
	c.switching = false
	c.setStateLocked(StateReady)

	if c.transcoding {
		if r, ok := c.seeker.TakePending(); ok {
			c.player.Seek(r.Target)
			if r.Resume {
				c.player.Play()
			}
			return
		}
	}
	if c.resumeAt > 0 {
		c.player.Seek(c.resumeAt)
		c.resumeAt = 0
	}
	if !c.autoplay {
		return
	}
	c.autoplay = false
	tok := c.sess.Token()
	remember := c.remember(it.Kind)
	c.spawn(func() {
		var off float64
		if remember {
			off = c.store.ItemOffset(c.ctx, it.ID)
		}
		c.guarded(tok, "progress", func() {
			if off > 0 {
				c.player.Seek(off)
			}
			c.player.Play()
		})
	})
}

func (c *Controller) checkpointAt(it media.Item, pos float64) {
	if pos <= 0 || !c.remember(it.Kind) {
		return
	}
	c.spawn(func() { c.store.Checkpoint(c.ctx, it.Kind, it.ID, pos) })
}

func (c *Controller) onTimeUpdate(it media.Item, pos float64) {
	if _, changed := c.cursor.Update(secondsToDuration(pos), false); changed {
		c.emitLyricsLocked()
	}
	if pos <= 0 || c.switching || !c.remember(it.Kind) {
		return
	}
	c.spawn(func() { c.store.RecordTime(it.Kind, it.ID, pos) })
}

func (c *Controller) onSeeking(it media.Item, target float64) {
	if !c.transcoding {
		return
	}
	r, ok := c.seeker.OnSeeking(target, c.player.Paused(), c.now())
	if !ok {
		return
	}
	c.met.TranscodeSeek()
	c.log.WithFields(logrus.Fields{
		"id":     it.ID,
		"target": r.Target,
	}).Debug("reissuing transcoded stream")
	c.switching = true
	c.player.Load(c.streams.StreamURL(it.ID, r.Target))
	c.setStateLocked(StateLoading)
}

func (c *Controller) onEnded(it media.Item) {
	now := c.now()
	if !c.lastEnded.IsZero() && now.Sub(c.lastEnded) < EndedCoalesceWindow {
		c.met.Coalesced()
		return
	}
	if c.switching {
		return
	}
	c.lastEnded = now
	c.setStateLocked(StateEnded)

	pl := c.sess.Playlist()
	if pl.Kind() != it.Kind || pl.IndexOf(it.ID) != pl.Index() {
		return
	}
	next, ok := pl.Advance()
	if !ok {
		return
	}
	c.emitPlaylistLocked()
	c.selectLocked(next, SelectOptions{User: true, FromPlaylist: true, Autoplay: true})
}

func (c *Controller) onError(it media.Item, merr *player.MediaError) {
	code := player.CodeUnknown
	var err error
	if merr != nil {
		code = merr.Code
		err = merr
	}
	c.met.PlaybackError(code.Label())
	msg := errorMessage(it, code)
	if it.Kind == media.KindVideo {
		msg = errmsg.WithHint(msg, c.hint)
	}
	c.failLocked(it, msg, err)
	if it.Kind == media.KindVideo && c.hint == "" {
		c.probeHintLocked(c.sess.Token(), it, true)
	}
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
