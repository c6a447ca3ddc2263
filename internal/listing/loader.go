// Package listing loads the host's media listing: a small first page for a
// fast first paint, then the full listing validated by ETag, then bounded
// polling while the host is still scanning.
package listing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/config"
	"github.com/llehouerou/lanshelf/internal/errmsg"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/mediahost"
	"github.com/llehouerou/lanshelf/internal/metrics"
	"github.com/llehouerou/lanshelf/internal/progress"
)

// Fetcher is the host listing endpoint.
type Fetcher interface {
	FetchListing(ctx context.Context, r mediahost.ListingRequest) (*media.Listing, string, error)
}

// TagStore keeps the listing ETag on this machine.
type TagStore interface {
	GetLocal(key string) (string, bool)
	SetLocal(key, value string)
}

type Loader struct {
	fetch Fetcher
	tags  TagStore
	cfg   config.ListingConfig
	log   *logrus.Entry
	met   *metrics.Metrics

	mu      sync.Mutex
	current *media.Listing
}

func New(fetch Fetcher, tags TagStore, cfg config.ListingConfig, met *metrics.Metrics) *Loader {
	return &Loader{
		fetch: fetch,
		tags:  tags,
		cfg:   cfg,
		log:   logrus.WithField("component", "listing"),
		met:   met,
	}
}

// Current returns the last listing loaded, or nil.
func (l *Loader) Current() *media.Listing {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Scanning reports whether the last listing said the host was scanning.
func (l *Loader) Scanning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current != nil && l.current.Scanning
}

func (l *Loader) set(li *media.Listing) {
	l.mu.Lock()
	l.current = li
	l.mu.Unlock()
}

// Initial fetches the first FirstPaintLimit items of each kind.
func (l *Loader) Initial(ctx context.Context) (*media.Listing, error) {
	li, _, err := l.fetch.FetchListing(ctx, mediahost.ListingRequest{Limit: l.cfg.FirstPaintLimit})
	if err != nil {
		l.log.WithError(err).Warn(errmsg.Format(errmsg.OpListingLoad, err))
		return nil, err
	}
	l.set(li)
	return li, nil
}

// Full fetches the complete listing. Unless refresh is set or the current
// listing is a limited one, the stored ETag is sent and a 304 answer keeps
// the current listing. changed is false in that case.
func (l *Loader) Full(ctx context.Context, refresh bool) (li *media.Listing, changed bool, err error) {
	cur := l.Current()
	req := mediahost.ListingRequest{Refresh: refresh}
	if !refresh && (cur == nil || !cur.Limited) && l.tags != nil {
		req.ETag, _ = l.tags.GetLocal(progress.KeyMediaETag)
	}

	li, etag, err := l.fetch.FetchListing(ctx, req)
	if errors.Is(err, mediahost.ErrNotModified) {
		l.met.ListingNotModified()
		if cur != nil && !cur.Limited {
			return cur, false, nil
		}
		if refresh {
			return nil, false, err
		}
		// Nothing cached to keep: ask again without validation.
		return l.Full(ctx, true)
	}
	if err != nil {
		l.log.WithError(err).Warn(errmsg.Format(errmsg.OpListingLoad, err))
		return nil, false, err
	}
	if etag != "" && l.tags != nil {
		l.tags.SetLocal(progress.KeyMediaETag, etag)
	}
	l.set(li)
	l.log.WithFields(logrus.Fields{
		"videos":   li.VideosTotal,
		"audios":   li.AudiosTotal,
		"images":   li.ImagesTotal,
		"scanning": li.Scanning,
	}).Info("listing loaded")
	return li, true, nil
}

// Poll refetches the listing every PollInterval while the host reports a
// scan in progress, at most MaxPolls times. onUpdate receives each listing
// that changed. Fetch errors are skipped; Poll returns when the scan ends,
// the bound is reached or ctx is done.
func (l *Loader) Poll(ctx context.Context, onUpdate func(*media.Listing)) error {
	timer := time.NewTimer(l.cfg.PollInterval)
	defer timer.Stop()

	for range l.cfg.MaxPolls {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		if !l.Scanning() {
			return nil
		}
		l.met.ListingPoll()
		li, changed, err := l.Full(ctx, false)
		if err == nil && changed && onUpdate != nil {
			onUpdate(li)
		}
		timer.Reset(l.cfg.PollInterval)
	}
	return nil
}
