// Package mediahost is the client for the LAN media host HTTP API.
package mediahost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/logging"
	"github.com/llehouerou/lanshelf/internal/media"
)

var (
	// ErrNotModified is returned by FetchListing when the host answers 304.
	ErrNotModified = errors.New("listing not modified")
	// ErrNotFound is returned when the host answers 404.
	ErrNotFound = errors.New("not found")
)

const clientIDHeader = "X-Client-Id"

// APIError is a non-2xx answer from the host.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("host returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("host returned %d: %s", e.Status, e.Message)
}

// Options configures a Client.
type Options struct {
	Timeout      time.Duration
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *logrus.Entry
}

// Client talks to one media host.
type Client struct {
	base     *url.URL
	http     *retryablehttp.Client
	clientID string
	log      *logrus.Entry
}

// New creates a client for the host at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse host url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("host url %q: scheme must be http or https", baseURL)
	}

	log := opts.Logger
	if log == nil {
		log = logging.For("mediahost")
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = max(opts.Retries, 0)
	rc.RetryWaitMin = time.Second
	rc.RetryWaitMax = 4 * time.Second
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	rc.Logger = logging.NewLeveledLogger(log)
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		base:     base,
		http:     rc,
		clientID: uuid.NewString(),
		log:      log,
	}, nil
}

// ClientID identifies this process to the host.
func (c *Client) ClientID() string {
	return c.clientID
}

// BaseURL returns the host root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body any) (*retryablehttp.Request, error) {
	var payload any
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(clientIDHeader, c.clientID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *retryablehttp.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("http request: %w", err)
	}
	return resp, nil
}

// checkStatus converts non-2xx responses to errors and closes their body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
}

// errorMessage extracts the message from {"error":{"message":...}} or
// {"error":"..."} bodies.
func errorMessage(r io.Reader) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil || len(body.Error) == 0 {
		return ""
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &nested); err == nil && nested.Message != "" {
		return nested.Message
	}
	var plain string
	if err := json.Unmarshal(body.Error, &plain); err == nil {
		return plain
	}
	return ""
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, rawURL string, body any) error {
	req, err := c.newRequest(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// ProbeResult is the host's container and codec sniffing for an item.
type ProbeResult struct {
	Container string           `json:"container"`
	Video     string           `json:"video,omitempty"`
	Audio     string           `json:"audio,omitempty"`
	Subtitles []media.Subtitle `json:"subtitles,omitempty"`
}

// Probe asks the host for container and codec metadata.
func (c *Client) Probe(ctx context.Context, id string) (ProbeResult, error) {
	var res ProbeResult
	err := c.getJSON(ctx, c.endpoint("/api/probe", url.Values{"id": {id}}), &res)
	return res, err
}

// StreamURL returns the stream address of an item. A positive start asks
// the host to begin a transcoded stream at that offset, in seconds.
func (c *Client) StreamURL(id string, start float64) string {
	q := url.Values{"id": {id}}
	if start > 0 {
		q.Set("start", strconv.FormatFloat(start, 'f', 3, 64))
	}
	return c.endpoint("/api/stream", q)
}

// Open fetches rawURL and returns its body and content type.
func (c *Client) Open(ctx context.Context, rawURL string) (io.ReadCloser, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// FetchText returns the streamed content of a small text item such as a
// lyrics sidecar.
func (c *Client) FetchText(ctx context.Context, id string) (string, error) {
	body, _, err := c.Open(ctx, c.StreamURL(id, 0))
	if err != nil {
		return "", err
	}
	defer body.Close()
	b, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(b), nil
}

// Prefs returns the host-side preference map.
func (c *Client) Prefs(ctx context.Context) (map[string]string, error) {
	var res struct {
		Prefs map[string]string `json:"prefs"`
	}
	if err := c.getJSON(ctx, c.endpoint("/api/prefs", nil), &res); err != nil {
		return nil, err
	}
	if res.Prefs == nil {
		res.Prefs = map[string]string{}
	}
	return res.Prefs, nil
}

// SetPrefs writes a batch of preferences in one request.
func (c *Client) SetPrefs(ctx context.Context, prefs map[string]string) error {
	if len(prefs) == 0 {
		return nil
	}
	return c.postJSON(ctx, c.endpoint("/api/prefs", nil), map[string]any{"prefs": prefs})
}

// Progress returns the host-side playback offset of an item, in seconds.
func (c *Client) Progress(ctx context.Context, id string) (float64, error) {
	var res struct {
		Time float64 `json:"time"`
	}
	if err := c.getJSON(ctx, c.endpoint("/api/progress", url.Values{"id": {id}}), &res); err != nil {
		return 0, err
	}
	return max(res.Time, 0), nil
}

// SetProgress stores the playback offset of an item.
func (c *Client) SetProgress(ctx context.Context, id string, t float64) error {
	return c.postJSON(ctx, c.endpoint("/api/progress", nil), map[string]any{
		"id":   id,
		"time": max(t, 0),
	})
}

// Log forwards a client log line to the host.
func (c *Client) Log(ctx context.Context, level, msg string) error {
	return c.postJSON(ctx, c.endpoint("/api/log", nil), map[string]any{
		"level":    level,
		"msg":      msg,
		"clientId": c.clientID,
	})
}
