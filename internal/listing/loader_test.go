package listing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lanshelf/internal/config"
	"github.com/llehouerou/lanshelf/internal/listing"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/mediahost"
	"github.com/llehouerou/lanshelf/internal/mediahost/hosttest"
	"github.com/llehouerou/lanshelf/internal/progress"
)

type memTags struct {
	mu sync.Mutex
	m  map[string]string
}

func (t *memTags) GetLocal(key string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.m[key]
	return v, ok
}

func (t *memTags) SetLocal(key, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[key] = value
}

func audios(n int) []media.Item {
	items := make([]media.Item, n)
	for i := range items {
		items[i] = media.Item{ID: media.EncodeID("music/" + string(rune('a'+i)) + ".mp3"), Name: string(rune('a'+i)) + ".mp3", Kind: media.KindAudio}
	}
	return items
}

func setup(t *testing.T, cfg config.ListingConfig) (*hosttest.Host, *listing.Loader, *memTags) {
	t.Helper()
	host := hosttest.New(t)
	client, err := mediahost.New(host.URL(), mediahost.Options{Retries: -1})
	require.NoError(t, err)
	tags := &memTags{m: map[string]string{}}
	return host, listing.New(client, tags, cfg, nil), tags
}

func TestInitial_Limited(t *testing.T) {
	host, l, tags := setup(t, config.ListingConfig{FirstPaintLimit: 2})
	host.SetListing(media.Listing{Audios: audios(5)}, `"v1"`)

	li, err := l.Initial(context.Background())
	require.NoError(t, err)
	assert.True(t, li.Limited)
	assert.Len(t, li.Audios, 2)
	assert.Equal(t, 5, li.AudiosTotal)
	_, ok := tags.GetLocal(progress.KeyMediaETag)
	assert.False(t, ok)
}

func TestFull_StoresETagAndHandles304(t *testing.T) {
	host, l, tags := setup(t, config.ListingConfig{})
	host.SetListing(media.Listing{Audios: audios(3)}, `"v1"`)

	li, changed, err := l.Full(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, li.Audios, 3)
	etag, _ := tags.GetLocal(progress.KeyMediaETag)
	assert.Equal(t, `"v1"`, etag)

	again, changed, err := l.Full(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, li, again)
}

func TestFull_304WithoutCacheRefetches(t *testing.T) {
	host, l, tags := setup(t, config.ListingConfig{})
	host.SetListing(media.Listing{Audios: audios(3)}, `"v1"`)
	tags.SetLocal(progress.KeyMediaETag, `"v1"`)

	li, changed, err := l.Full(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, li.Audios, 3)
	assert.Equal(t, 2, host.Requests(hosttest.Media))
}

func TestFull_AfterLimitedSkipsETag(t *testing.T) {
	host, l, tags := setup(t, config.ListingConfig{FirstPaintLimit: 1})
	host.SetListing(media.Listing{Audios: audios(3)}, `"v1"`)
	tags.SetLocal(progress.KeyMediaETag, `"v1"`)

	_, err := l.Initial(context.Background())
	require.NoError(t, err)
	li, changed, err := l.Full(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, li.Limited)
	assert.Len(t, li.Audios, 3)
	assert.Equal(t, 2, host.Requests(hosttest.Media))
}

func TestFull_Error(t *testing.T) {
	host, l, _ := setup(t, config.ListingConfig{})
	host.Fail(hosttest.Media, true)

	_, _, err := l.Full(context.Background(), false)
	require.Error(t, err)
	assert.Nil(t, l.Current())
}

func TestPoll_StopsWhenScanEnds(t *testing.T) {
	host, l, _ := setup(t, config.ListingConfig{PollInterval: 5 * time.Millisecond, MaxPolls: 10})
	host.SetListing(media.Listing{Audios: audios(2)}, "")
	host.SetScanning(3)

	_, _, err := l.Full(context.Background(), false)
	require.NoError(t, err)
	require.True(t, l.Scanning())

	var updates int
	require.NoError(t, l.Poll(context.Background(), func(*media.Listing) { updates++ }))
	assert.False(t, l.Scanning())
	assert.Equal(t, 3, updates)
	assert.Equal(t, 4, host.Requests(hosttest.Media))
}

func TestPoll_Bounded(t *testing.T) {
	host, l, _ := setup(t, config.ListingConfig{PollInterval: time.Millisecond, MaxPolls: 3})
	host.SetListing(media.Listing{Audios: audios(1)}, "")
	host.SetScanning(100)

	_, _, err := l.Full(context.Background(), false)
	require.NoError(t, err)
	require.NoError(t, l.Poll(context.Background(), nil))
	assert.Equal(t, 4, host.Requests(hosttest.Media))
	assert.True(t, l.Scanning())
}

func TestPoll_Cancelled(t *testing.T) {
	host, l, _ := setup(t, config.ListingConfig{PollInterval: time.Hour, MaxPolls: 3})
	host.SetListing(media.Listing{}, "")
	host.SetScanning(1)
	_, _, err := l.Full(context.Background(), false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Poll(ctx, nil), context.Canceled)
}
