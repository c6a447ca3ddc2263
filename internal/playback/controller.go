// Package playback drives a playback session: it reacts to user selections
// and media element events, keeps the playlist and session state, and
// persists what is needed to resume later.
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/capability"
	"github.com/llehouerou/lanshelf/internal/config"
	"github.com/llehouerou/lanshelf/internal/lyrics"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/metrics"
	"github.com/llehouerou/lanshelf/internal/player"
	"github.com/llehouerou/lanshelf/internal/playlist"
	"github.com/llehouerou/lanshelf/internal/progress"
	"github.com/llehouerou/lanshelf/internal/session"
	"github.com/llehouerou/lanshelf/internal/transcode"
)

// EndedCoalesceWindow is the interval within which repeated ended signals
// count as one.
const EndedCoalesceWindow = 500 * time.Millisecond

// Runner executes an asynchronous job.
type Runner func(job func())

// GoRunner runs each job on its own goroutine.
func GoRunner(job func()) { go job() }

// StreamLocator builds stream URLs for host items.
type StreamLocator interface {
	StreamURL(id string, start float64) string
}

// Deps are the collaborators of a Controller. Prober and Lyrics are
// optional.
type Deps struct {
	Config  *config.Config
	Player  player.Interface
	Store   *progress.Store
	Streams StreamLocator
	Prober  *capability.Prober
	Lyrics  *lyrics.Source
	Builder *playlist.Builder
	Metrics *metrics.Metrics
	Runner  Runner
	Now     func() time.Time
	Logger  *logrus.Entry
}

// SelectOptions qualify a selection. User marks a direct user action;
// FromPlaylist keeps the current playlist; Autoplay starts playback once
// ready; Resume marks the resume-on-start flow.
type SelectOptions struct {
	User         bool
	FromPlaylist bool
	Autoplay     bool
	Resume       bool
}

// Controller is the playback session controller. All state is guarded by
// one mutex; asynchronous results re-enter through it and are dropped when
// the selection they were started for is no longer current.
type Controller struct {
	cfg       *config.Config
	player    player.Interface
	store     *progress.Store
	streams   StreamLocator
	prober    *capability.Prober
	lyricsSrc *lyrics.Source
	builder   *playlist.Builder
	checker   *capability.Checker
	met       *metrics.Metrics
	run       Runner
	now       func() time.Time
	log       *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	sess        session.State
	listing     *media.Listing
	state       State
	jobs        []func()
	subs        []*Subscription
	shuffle     bool
	loop        bool
	autoplay    bool
	switching   bool
	transcoding bool
	seeker      *transcode.Seeker
	resumeAt    float64
	lastEnded   time.Time
	cursor      *lyrics.Cursor
	hint        string
	errMsg      string
	closed      bool
}

// New creates a controller. Shuffle and loop start from the stored
// preferences, else from the audio settings.
func New(d Deps) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		cfg:       d.Config,
		player:    d.Player,
		store:     d.Store,
		streams:   d.Streams,
		prober:    d.Prober,
		lyricsSrc: d.Lyrics,
		builder:   d.Builder,
		met:       d.Metrics,
		run:       d.Runner,
		now:       d.Now,
		log:       d.Logger,
		ctx:       ctx,
		cancel:    cancel,
		seeker:    transcode.NewSeeker(),
	}
	if c.cfg == nil {
		c.cfg = &config.Config{}
	}
	if c.builder == nil {
		c.builder = playlist.NewBuilder(c.cfg.CollationLocale())
	}
	if c.run == nil {
		c.run = GoRunner
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = logrus.WithField("component", "playback")
	}
	c.checker = capability.NewChecker(c.cfg.Kind)

	audio := c.cfg.Kind(media.KindAudio)
	c.shuffle = audio.Shuffle
	if on, ok := c.store.Flag(progress.ShuffleKey(media.KindAudio)); ok {
		c.shuffle = on
	}
	c.loop = audio.Loop
	if on, ok := c.store.Flag(progress.LoopKey(media.KindAudio)); ok {
		c.loop = on
	}
	return c
}

// do runs fn under the lock, then dispatches the jobs fn queued.
func (c *Controller) do(fn func()) {
	c.mu.Lock()
	fn()
	jobs := c.jobs
	c.jobs = nil
	c.mu.Unlock()
	for _, job := range jobs {
		c.run(job)
	}
}

// spawn queues a job; the caller holds the lock.
func (c *Controller) spawn(job func()) {
	c.jobs = append(c.jobs, job)
}

// guarded runs fn under the lock when tok is still the current selection.
func (c *Controller) guarded(tok session.Token, source string, fn func()) {
	c.do(func() {
		if c.closed {
			return
		}
		if !c.sess.IsCurrent(tok) {
			c.met.Stale(source)
			c.log.WithFields(logrus.Fields{
				"source": source,
				"token":  uint64(tok),
			}).Debug("stale result dropped")
			return
		}
		fn()
	})
}

func (c *Controller) each(fn func(*Subscription)) {
	for _, s := range c.subs {
		fn(s)
	}
}

func (c *Controller) setStateLocked(s State) {
	if s == c.state {
		return
	}
	e := StateChange{Previous: c.state, Current: s}
	c.state = s
	c.each(func(sub *Subscription) { sub.sendState(e) })
}

func (c *Controller) emitPlaylistLocked() {
	pl := c.sess.Playlist()
	e := PlaylistChange{Kind: pl.Kind(), Items: pl.Items(), Index: pl.Index()}
	c.each(func(sub *Subscription) { sub.sendPlaylist(e) })
}

func (c *Controller) emitModeLocked() {
	e := ModeChange{Shuffle: c.shuffle, Loop: c.loop}
	c.each(func(sub *Subscription) { sub.sendMode(e) })
}

func (c *Controller) remember(k media.Kind) bool {
	return c.store.RememberEnabled(k, c.cfg.Kind(k).RememberEnabled())
}

func (c *Controller) shuffleFor(k media.Kind) bool {
	if k == media.KindAudio {
		return c.shuffle
	}
	return c.cfg.Kind(k).Shuffle
}

// SetListing replaces the listing playlists are built from.
func (c *Controller) SetListing(l *media.Listing) {
	c.do(func() { c.listing = l })
}

func (c *Controller) Listing() *media.Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listing
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Run feeds media element events to the controller until ctx is done, the
// controller is closed or the element closes its event channel.
func (c *Controller) Run(ctx context.Context) error {
	events := c.player.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.HandleEvent(ev)
		}
	}
}

// Close checkpoints the current offset, flushes pending preference writes,
// detaches the media element and closes all subscriptions.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	var checkpoint func()
	if it, ok := c.sess.Current(); ok && c.playingOrPausedLocked() && c.remember(it.Kind) {
		if pos := c.player.Position(); pos > 0 {
			checkpoint = func() { c.store.Checkpoint(ctx, it.Kind, it.ID, pos) }
		}
	}
	c.player.Reset()
	subs := c.subs
	c.subs = nil
	c.jobs = nil
	c.mu.Unlock()

	if checkpoint != nil {
		checkpoint()
	}
	err := c.store.Flush(ctx)
	c.cancel()
	for _, s := range subs {
		s.close()
	}
	return err
}

func (c *Controller) playingOrPausedLocked() bool {
	return c.state == StatePlaying || c.state == StatePaused
}
