package mediahost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/llehouerou/lanshelf/internal/media"
)

// ListingRequest selects how the listing is fetched.
type ListingRequest struct {
	// Refresh asks the host to rescan instead of serving its cache.
	Refresh bool
	// Limit caps the items per kind; the answer is then marked Limited
	// and carries no ETag.
	Limit int
	// ETag is sent as If-None-Match.
	ETag string
}

// FetchListing fetches the media listing. It returns the listing and the
// ETag the host sent, or ErrNotModified when ETag still matches.
func (c *Client) FetchListing(ctx context.Context, r ListingRequest) (*media.Listing, string, error) {
	q := url.Values{}
	if r.Refresh {
		q.Set("refresh", "1")
	}
	if r.Limit > 0 {
		q.Set("limit", strconv.Itoa(r.Limit))
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint("/api/media", q), nil)
	if err != nil {
		return nil, "", err
	}
	if r.ETag != "" && r.Limit <= 0 && !r.Refresh {
		req.Header.Set("If-None-Match", r.ETag)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode == http.StatusNotModified {
		resp.Body.Close()
		return nil, r.ETag, ErrNotModified
	}
	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	var l media.Listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, "", fmt.Errorf("decode listing: %w", err)
	}
	return &l, resp.Header.Get("ETag"), nil
}
