package capability

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/logging"
	"github.com/llehouerou/lanshelf/internal/mediahost"
)

// DefaultCacheSize bounds the probe cache.
const DefaultCacheSize = 100

// ProbeSource fetches probe results from the host.
type ProbeSource interface {
	Probe(ctx context.Context, id string) (mediahost.ProbeResult, error)
}

// Prober caches host probe results per item id. The cache holds at most
// size entries and evicts the oldest insertion first. Failures are not
// cached, so a later probe of the same id retries.
type Prober struct {
	source ProbeSource
	size   int
	log    *logrus.Entry

	mu      sync.Mutex
	entries map[string]mediahost.ProbeResult
	order   []string
}

// NewProber creates a prober with the default cache size.
func NewProber(source ProbeSource) *Prober {
	return NewProberSize(source, DefaultCacheSize)
}

// NewProberSize creates a prober holding at most size entries.
func NewProberSize(source ProbeSource, size int) *Prober {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Prober{
		source:  source,
		size:    size,
		log:     logging.For("capability"),
		entries: make(map[string]mediahost.ProbeResult),
	}
}

// Probe returns the cached or freshly fetched result for id, or None on
// failure.
func (p *Prober) Probe(ctx context.Context, id string) mo.Option[mediahost.ProbeResult] {
	if id == "" {
		return mo.None[mediahost.ProbeResult]()
	}

	p.mu.Lock()
	if res, ok := p.entries[id]; ok {
		p.mu.Unlock()
		return mo.Some(res)
	}
	p.mu.Unlock()

	res, err := p.source.Probe(ctx, id)
	if err != nil {
		p.log.WithError(err).WithField("id", id).Debug("probe failed")
		return mo.None[mediahost.ProbeResult]()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.entries[id]; !ok {
		if len(p.order) >= p.size {
			oldest := p.order[0]
			p.order = p.order[1:]
			delete(p.entries, oldest)
		}
		p.order = append(p.order, id)
	}
	p.entries[id] = res
	return mo.Some(res)
}

// Len returns the number of cached results.
func (p *Prober) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Cached reports whether id has a cached result.
func (p *Prober) Cached(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.entries[id]
	return ok
}

var heavyAudioCodecs = []string{"AC-3", "E-AC-3", "DTS", "TrueHD", "FLAC"}

// HintText describes the container and codecs, e.g. "Codec: MKV / HEVC / DTS".
func HintText(res mo.Option[mediahost.ProbeResult]) string {
	r, ok := res.Get()
	if !ok {
		return ""
	}
	parts := lo.Compact([]string{strings.ToUpper(r.Container), r.Video, r.Audio})
	if len(parts) == 0 {
		return ""
	}
	return "Codec: " + strings.Join(parts, " / ")
}

// WarnText warns about audio codecs outputs commonly cannot decode.
func WarnText(res mo.Option[mediahost.ProbeResult]) string {
	r, ok := res.Get()
	if !ok || r.Audio == "" {
		return ""
	}
	heavy := lo.ContainsBy(heavyAudioCodecs, func(codec string) bool {
		return strings.Contains(r.Audio, codec)
	})
	if !heavy {
		return ""
	}
	return fmt.Sprintf("Note: audio is %s, which may not be supported", r.Audio)
}
