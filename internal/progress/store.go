// Package progress keeps playback preferences and offsets in two tiers: a
// host-backed map shared across clients and a local store on this machine.
package progress

import (
	"context"
	"errors"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/errmsg"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/metrics"
	"github.com/llehouerou/lanshelf/internal/playlist"
)

const (
	DefaultBatchWindow = 300 * time.Millisecond
	DefaultThrottle    = 1500 * time.Millisecond

	flushTimeout = 10 * time.Second
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("progress store closed")

// Local is the synchronous tier on this machine.
type Local interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Progress(itemID string) (float64, bool, error)
	SaveProgress(itemID string, position float64) error
}

// Remote is the host tier.
type Remote interface {
	Prefs(ctx context.Context) (map[string]string, error)
	SetPrefs(ctx context.Context, prefs map[string]string) error
	Progress(ctx context.Context, id string) (float64, error)
	SetProgress(ctx context.Context, id string, t float64) error
}

type Options struct {
	BatchWindow time.Duration
	Throttle    time.Duration
	Now         func() time.Time
	Logger      *logrus.Entry
	Metrics     *metrics.Metrics
}

// Store merges the two tiers. Reads prefer values loaded from or written to
// the host; writes land locally at once and reach the host in batches.
type Store struct {
	local  Local
	remote Remote
	log    *logrus.Entry
	met    *metrics.Metrics
	now    func() time.Time
	window time.Duration
	thr    time.Duration

	mu       sync.Mutex
	mem      map[string]string
	batch    map[string]string
	timer    *time.Timer
	flushing sync.WaitGroup
	closed   bool
	lastRec  map[string]time.Time
}

// New creates a store. remote may be nil for a local-only session.
func New(local Local, remote Remote, opts Options) *Store {
	s := &Store{
		local:   local,
		remote:  remote,
		log:     opts.Logger,
		met:     opts.Metrics,
		now:     opts.Now,
		window:  opts.BatchWindow,
		thr:     opts.Throttle,
		mem:     make(map[string]string),
		batch:   make(map[string]string),
		lastRec: make(map[string]time.Time),
	}
	if s.log == nil {
		s.log = logrus.WithField("component", "progress")
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.window <= 0 {
		s.window = DefaultBatchWindow
	}
	if s.thr <= 0 {
		s.thr = DefaultThrottle
	}
	return s
}

// Load pulls the host preference map into memory. On failure memory stays
// empty and reads fall back to the local tier.
func (s *Store) Load(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}
	prefs, err := s.remote.Prefs(ctx)
	if err != nil {
		s.log.WithError(err).Warn(errmsg.Format(errmsg.OpPrefsLoad, err))
		return err
	}
	s.mu.Lock()
	maps.Copy(s.mem, prefs)
	s.mu.Unlock()
	return nil
}

// Get returns the in-memory value when present, else the local one.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	v, ok := s.mem[key]
	s.mu.Unlock()
	if ok {
		return v, true
	}
	if s.local == nil {
		return "", false
	}
	v, ok, err := s.local.Get(key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Debug("local read failed")
		return "", false
	}
	return v, ok
}

// Float parses the value of key as a number.
func (s *Store) Float(key string) (float64, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// GetFloat is Float with missing or malformed values read as 0.
func (s *Store) GetFloat(key string) float64 {
	f, _ := s.Float(key)
	return f
}

// SetFloat stores f under key.
func (s *Store) SetFloat(key string, f float64) {
	s.Set(key, formatFloat(f))
}

// Set writes key to memory and the local tier, and queues it for the host.
// The first write of a window arms the flush timer; later writes in the same
// window overwrite the queued value.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.mem[key] = value
	if s.local != nil {
		if err := s.local.Set(key, value); err != nil {
			s.log.WithError(err).WithField("key", key).Debug("local write failed")
		}
	}
	if s.remote == nil {
		return
	}
	s.batch[key] = value
	if s.timer == nil {
		s.timer = time.AfterFunc(s.window, s.fire)
	}
}

// SetLocal writes key to the local tier only.
func (s *Store) SetLocal(key, value string) {
	if s.local == nil {
		return
	}
	if err := s.local.Set(key, value); err != nil {
		s.log.WithError(err).WithField("key", key).Debug("local write failed")
	}
}

// GetLocal reads key from the local tier only.
func (s *Store) GetLocal(key string) (string, bool) {
	if s.local == nil {
		return "", false
	}
	v, ok, err := s.local.Get(key)
	if err != nil {
		return "", false
	}
	return v, ok
}

func (s *Store) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	s.flush(ctx, false)
}

// takeBatch swaps out the pending batch and disarms the timer. With closing
// set, the store stops accepting writes in the same critical section.
func (s *Store) takeBatch(closing bool) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if closing {
		s.closed = true
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if len(s.batch) == 0 {
		return nil
	}
	batch := s.batch
	s.batch = make(map[string]string)
	s.flushing.Add(1)
	return batch
}

func (s *Store) flush(ctx context.Context, closing bool) error {
	batch := s.takeBatch(closing)
	if batch == nil {
		return nil
	}
	defer s.flushing.Done()
	err := s.remote.SetPrefs(ctx, batch)
	s.met.PrefsFlush(err)
	if err != nil {
		s.log.WithError(err).WithField("keys", len(batch)).Warn(errmsg.Format(errmsg.OpPrefsSave, err))
	}
	return err
}

// Flush sends the pending batch now.
func (s *Store) Flush(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}
	return s.flush(ctx, false)
}

// Close flushes pending writes and rejects further ones.
func (s *Store) Close(ctx context.Context) error {
	err := s.flush(ctx, true)
	s.flushing.Wait()
	return err
}

// RememberEnabled applies the stored override for k, if any, over def.
func (s *Store) RememberEnabled(k media.Kind, def bool) bool {
	switch v, _ := s.Get(RememberKey(k)); v {
	case "1":
		return true
	case "0":
		return false
	}
	return def
}

// SetRemember stores the override for k.
func (s *Store) SetRemember(k media.Kind, on bool) {
	s.Set(RememberKey(k), boolString(on))
}

// Selection is what SaveSelection persists.
type Selection struct {
	Kind     media.Kind
	ID       string
	Offset   *float64
	Playlist *playlist.State
	Volume   *float64
}

// SaveSelection records the active item for resume. The offset, when set,
// is also reported as the item's host-side progress.
func (s *Store) SaveSelection(ctx context.Context, sel Selection) {
	if sel.ID == "" || sel.Kind == media.KindNone {
		return
	}
	s.Set(KeyLastActiveKind, sel.Kind.String())
	s.Set(LastIDKey(sel.Kind), sel.ID)
	if sel.Offset != nil && sel.Kind.Timed() {
		s.Set(LastTimeKey(sel.Kind), formatFloat(*sel.Offset))
		s.reportProgress(ctx, sel.ID, *sel.Offset)
	}
	if sel.Playlist != nil && !sel.Playlist.Empty() {
		s.Set(KeyPlaylist, sel.Playlist.Snapshot().Encode())
	}
	if sel.Volume != nil {
		s.Set(KeyVolume, formatFloat(*sel.Volume))
	}
	s.log.WithFields(logrus.Fields{
		"kind": sel.Kind.String(),
		"id":   sel.ID,
	}).Debug("selection saved")
}

// RecordTime stores the local offset for id at most once per throttle
// interval. It reports whether the write happened.
func (s *Store) RecordTime(k media.Kind, id string, t float64) bool {
	if id == "" || !k.Timed() {
		return false
	}
	now := s.now()
	s.mu.Lock()
	if last, ok := s.lastRec[id]; ok && now.Sub(last) < s.thr {
		s.mu.Unlock()
		return false
	}
	s.lastRec[id] = now
	s.mu.Unlock()

	s.saveLocal(id, t)
	s.SetLocal(LastTimeKey(k), formatFloat(t))
	return true
}

// Checkpoint writes the offset to both tiers without throttling.
func (s *Store) Checkpoint(ctx context.Context, k media.Kind, id string, t float64) {
	if id == "" || !k.Timed() {
		return
	}
	s.saveLocal(id, t)
	s.Set(LastTimeKey(k), formatFloat(t))
	s.reportProgress(ctx, id, t)
}

func (s *Store) saveLocal(id string, t float64) {
	if s.local == nil {
		return
	}
	if err := s.local.SaveProgress(id, t); err != nil {
		s.log.WithError(err).WithField("id", id).Debug("local progress write failed")
	}
}

func (s *Store) reportProgress(ctx context.Context, id string, t float64) {
	if s.remote == nil {
		return
	}
	if err := s.remote.SetProgress(ctx, id, t); err != nil {
		s.log.WithError(err).WithField("id", id).Warn(errmsg.Format(errmsg.OpProgressSave, err))
	}
}

// ItemOffset asks the host for id's offset; errors read as 0.
func (s *Store) ItemOffset(ctx context.Context, id string) float64 {
	if s.remote == nil || id == "" {
		return 0
	}
	t, err := s.remote.Progress(ctx, id)
	if err != nil {
		s.log.WithError(err).WithField("id", id).Debug(errmsg.Format(errmsg.OpProgressLoad, err))
		return 0
	}
	return t
}

// ResumeOffset picks the offset to resume id at. A positive host offset
// wins; otherwise the local per-item offset; otherwise the per-kind last
// offset when it belongs to id.
func (s *Store) ResumeOffset(ctx context.Context, k media.Kind, id string) float64 {
	if t := s.ItemOffset(ctx, id); t > 0 {
		return t
	}
	if s.local != nil {
		if t, ok, err := s.local.Progress(id); err == nil && ok && t > 0 {
			return t
		}
	}
	if last, _ := s.Get(LastIDKey(k)); last == id {
		if t := s.GetFloat(LastTimeKey(k)); t > 0 {
			return t
		}
	}
	return 0
}

// LastSelection returns the last active kind and its item id.
func (s *Store) LastSelection() (media.Kind, string, bool) {
	raw, ok := s.Get(KeyLastActiveKind)
	if !ok {
		return media.KindNone, "", false
	}
	k, err := media.ParseKind(raw)
	if err != nil || k == media.KindNone || k == media.KindOther {
		return media.KindNone, "", false
	}
	id, _ := s.Get(LastIDKey(k))
	if id == "" {
		return k, "", false
	}
	return k, id, true
}

// PlaylistSnapshot decodes the stored playlist, if any.
func (s *Store) PlaylistSnapshot() (playlist.Snapshot, bool) {
	raw, ok := s.Get(KeyPlaylist)
	if !ok || raw == "" {
		return playlist.Snapshot{}, false
	}
	snap, err := playlist.DecodeSnapshot(raw)
	if err != nil {
		return playlist.Snapshot{}, false
	}
	return snap, true
}

// Flag reads a "1"/"0" preference.
func (s *Store) Flag(key string) (bool, bool) {
	switch v, _ := s.Get(key); v {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}

func (s *Store) SetFlag(key string, on bool) {
	s.Set(key, boolString(on))
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
