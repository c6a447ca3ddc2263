package lyrics

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoLyrics is returned for an empty lyrics id.
var ErrNoLyrics = errors.New("item has no lyrics")

// TextFetcher retrieves the raw content of a host item.
type TextFetcher interface {
	FetchText(ctx context.Context, id string) (string, error)
}

// Source loads lyrics sidecars from the media host.
type Source struct {
	fetcher TextFetcher
}

// NewSource creates a lyrics source backed by fetcher.
func NewSource(fetcher TextFetcher) *Source {
	return &Source{fetcher: fetcher}
}

// FetchResult contains the result of a lyrics fetch.
type FetchResult struct {
	LyricsID string
	Lyrics   *Lyrics
	Err      error
}

// Fetch loads and parses the lyrics sidecar with the given id.
// Failures are reported in the result.
func (s *Source) Fetch(ctx context.Context, lyricsID string) FetchResult {
	res := FetchResult{LyricsID: lyricsID}
	if lyricsID == "" {
		res.Err = ErrNoLyrics
		return res
	}

	text, err := s.fetcher.FetchText(ctx, lyricsID)
	if err != nil {
		res.Err = fmt.Errorf("fetch lyrics: %w", err)
		return res
	}

	res.Lyrics = ParseString(text)
	return res
}
