// Package player is the media element: it loads a stream from the host,
// plays it through the system speaker and reports what happens as events.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/sirupsen/logrus"
)

const (
	// TickInterval is the period of time updates while playing.
	TickInterval = 250 * time.Millisecond

	eventBuffer  = 64
	speakerRate  = beep.SampleRate(44100)
	resampleQual = 4
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return speakerErr
}

// Player is a speaker-backed media element for audio streams.
type Player struct {
	opener Opener
	log    *logrus.Entry

	evMu     sync.RWMutex
	events   chan Event
	evClosed bool

	mu          sync.Mutex
	gen         uint64
	state       State
	wantPlay    bool
	cancel      context.CancelFunc
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	volumeLevel float64
	stopTick    chan struct{}
}

// New creates a player that fetches streams through opener.
func New(opener Opener, log *logrus.Entry) *Player {
	if log == nil {
		log = logrus.WithField("component", "player")
	}
	return &Player{
		opener:      opener,
		log:         log,
		events:      make(chan Event, eventBuffer),
		volumeLevel: 1,
	}
}

func (p *Player) Events() <-chan Event { return p.events }

// emit never blocks; events are dropped when the consumer lags.
func (p *Player) emit(ev Event) {
	p.evMu.RLock()
	defer p.evMu.RUnlock()
	if p.evClosed {
		return
	}
	select {
	case p.events <- ev:
	default:
		p.log.WithField("event", ev.Type.String()).Debug("event dropped")
	}
}

func (p *Player) CanPlayType(mime string) string {
	switch strings.ToLower(mime) {
	case "audio/mpeg", "audio/flac", "audio/wav", "audio/x-wav", "audio/wave":
		return "probably"
	}
	return ""
}

func (p *Player) Load(url string) {
	p.Reset()

	p.mu.Lock()
	p.gen++
	gen := p.gen
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.state = Loading
	p.mu.Unlock()

	go p.load(ctx, gen, url)
}

func (p *Player) load(ctx context.Context, gen uint64, url string) {
	data, contentType, err := p.fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.fail(gen, CodeNetworkOrIO, err)
		return
	}

	streamer, format, err := decode(data, contentType)
	if err != nil {
		code := CodeDecodeUnsupported
		if errors.Is(err, errUnknownFormat) {
			code = CodeSourceUnsupported
		}
		p.fail(gen, code, err)
		return
	}
	if err := initSpeaker(); err != nil {
		streamer.Close()
		p.fail(gen, CodeUnknown, fmt.Errorf("speaker: %w", err))
		return
	}

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		streamer.Close()
		return
	}
	p.streamer = streamer
	p.format = format
	var out beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		out = beep.Resample(resampleQual, format.SampleRate, speakerRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   gainFor(p.volumeLevel),
		Silent:   p.volumeLevel <= 0,
	}
	p.state = Paused
	autoplay := p.wantPlay
	p.wantPlay = false
	p.mu.Unlock()

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		go p.finished(gen)
	})))

	p.log.WithFields(logrus.Fields{
		"format":      format.SampleRate,
		"duration":    format.SampleRate.D(streamer.Len()).Round(time.Second),
		"contentType": contentType,
	}).Debug("stream ready")
	p.emit(Event{Type: EventReady})
	if autoplay {
		p.Play()
	}
}

func (p *Player) fetch(ctx context.Context, url string) ([]byte, string, error) {
	rc, contentType, err := p.opener.Open(ctx, url)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

func (p *Player) fail(gen uint64, code ErrorCode, err error) {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.state = Empty
	p.wantPlay = false
	p.mu.Unlock()

	p.log.WithError(err).WithField("code", code.Label()).Debug("load failed")
	p.emit(Event{Type: EventError, Err: &MediaError{Code: code, Err: err}})
}

func (p *Player) finished(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.state != Playing {
		p.mu.Unlock()
		return
	}
	p.state = Ended
	p.stopTickerLocked()
	pos := p.positionLocked()
	p.mu.Unlock()
	p.emit(Event{Type: EventEnded, Position: pos})
}

func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case Loading:
		p.wantPlay = true
		return
	case Paused:
	default:
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
	p.startTickerLocked()
	p.emit(Event{Type: EventPlay, Position: p.positionLocked()})
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Loading {
		p.wantPlay = false
		return
	}
	if !p.state.CanPause() {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
	p.stopTickerLocked()
	p.emit(Event{Type: EventPause, Position: p.positionLocked()})
}

func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state != Playing
}

// State returns the element state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Seek(sec float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.HasSource() {
		return
	}
	p.emit(Event{Type: EventSeeking, Position: sec})
	sample := p.format.SampleRate.N(time.Duration(max(sec, 0) * float64(time.Second)))
	speaker.Lock()
	err := p.streamer.Seek(min(sample, p.streamer.Len()))
	speaker.Unlock()
	if err != nil {
		p.log.WithError(err).WithField("target", sec).Debug("seek failed")
	}
	if p.state == Ended {
		p.state = Paused
	}
	p.emit(Event{Type: EventSeeked, Position: p.positionLocked()})
}

func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() float64 {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos.Seconds()
}

func (p *Player) startTickerLocked() {
	p.stopTickerLocked()
	stop := make(chan struct{})
	p.stopTick = stop
	gen := p.gen
	go func() {
		t := time.NewTicker(TickInterval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				p.mu.Lock()
				if gen != p.gen || p.state != Playing {
					p.mu.Unlock()
					return
				}
				pos := p.positionLocked()
				p.mu.Unlock()
				p.emit(Event{Type: EventTimeUpdate, Position: pos})
			}
		}
	}()
}

func (p *Player) stopTickerLocked() {
	if p.stopTick != nil {
		close(p.stopTick)
		p.stopTick = nil
	}
}

func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.stopTickerLocked()
	if p.streamer != nil {
		speaker.Clear()
		if err := p.streamer.Close(); err != nil {
			p.log.WithError(err).Debug("close stream")
		}
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.state = Empty
	p.wantPlay = false
}

// Close detaches the source and closes the event channel.
func (p *Player) Close() error {
	p.Reset()
	p.evMu.Lock()
	defer p.evMu.Unlock()
	if !p.evClosed {
		p.evClosed = true
		close(p.events)
	}
	return nil
}
