// Package hosttest provides an in-process fake media host for tests.
package hosttest

import (
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/llehouerou/lanshelf/internal/media"
)

// Endpoint names accepted by Fail and Requests.
const (
	Media    = "media"
	Probe    = "probe"
	Stream   = "stream"
	Prefs    = "prefs"
	Progress = "progress"
	Log      = "log"
)

// ProgressPost is one recorded POST /api/progress body.
type ProgressPost struct {
	ID   string  `json:"id"`
	Time float64 `json:"time"`
}

// LogLine is one recorded POST /api/log body.
type LogLine struct {
	Level    string `json:"level"`
	Msg      string `json:"msg"`
	ClientID string `json:"clientId"`
}

type stream struct {
	body        []byte
	contentType string
}

// Host is a fake media host served by httptest.
type Host struct {
	server *httptest.Server

	mu            sync.Mutex
	listing       media.Listing
	etag          string
	scanning      int
	probes        map[string]probeAnswer
	streams       map[string]stream
	prefs         map[string]string
	progress      map[string]float64
	failing       map[string]bool
	requests      map[string]int
	prefsPosts    []map[string]string
	progressPosts []ProgressPost
	logs          []LogLine
	streamQueries []string
	clientIDs     map[string]bool
}

type probeAnswer struct {
	Container string `json:"container"`
	Video     string `json:"video,omitempty"`
	Audio     string `json:"audio,omitempty"`
}

// New starts a fake host that is closed when the test ends.
func New(t testing.TB) *Host {
	t.Helper()
	h := &Host{
		probes:    make(map[string]probeAnswer),
		streams:   make(map[string]stream),
		prefs:     make(map[string]string),
		progress:  make(map[string]float64),
		failing:   make(map[string]bool),
		requests:  make(map[string]int),
		clientIDs: make(map[string]bool),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.count)
	api.HandleFunc("/media", h.handleMedia).Methods(http.MethodGet)
	api.HandleFunc("/probe", h.handleProbe).Methods(http.MethodGet)
	api.HandleFunc("/stream", h.handleStream).Methods(http.MethodGet)
	api.HandleFunc("/prefs", h.handleGetPrefs).Methods(http.MethodGet)
	api.HandleFunc("/prefs", h.handlePostPrefs).Methods(http.MethodPost)
	api.HandleFunc("/progress", h.handleGetProgress).Methods(http.MethodGet)
	api.HandleFunc("/progress", h.handlePostProgress).Methods(http.MethodPost)
	api.HandleFunc("/log", h.handleLog).Methods(http.MethodPost)

	h.server = httptest.NewServer(r)
	t.Cleanup(h.server.Close)
	return h
}

// URL returns the host root.
func (h *Host) URL() string {
	return h.server.URL
}

// SetListing sets the listing and the ETag served with it.
func (h *Host) SetListing(l media.Listing, etag string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listing = l
	h.etag = etag
}

// SetScanning makes the next n listing answers report a scan in progress.
func (h *Host) SetScanning(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scanning = n
}

// SetProbe sets the probe answer for id.
func (h *Host) SetProbe(id, container, video, audio string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes[id] = probeAnswer{Container: container, Video: video, Audio: audio}
}

// SetStream sets the bytes streamed for id.
func (h *Host) SetStream(id string, body []byte, contentType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.streams[id] = stream{body: body, contentType: contentType}
}

// SetPref sets a host-side preference.
func (h *Host) SetPref(key, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prefs[key] = value
}

// SetProgress sets the host-side offset of id.
func (h *Host) SetProgress(id string, t float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.progress[id] = t
}

// Fail makes an endpoint answer 500 until turned off.
func (h *Host) Fail(endpoint string, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failing[endpoint] = on
}

// Requests returns how many requests an endpoint received.
func (h *Host) Requests(endpoint string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.requests[endpoint]
}

// PrefsPosts returns the recorded POST /api/prefs batches.
func (h *Host) PrefsPosts() []map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]map[string]string, len(h.prefsPosts))
	for i, p := range h.prefsPosts {
		out[i] = maps.Clone(p)
	}
	return out
}

// Pref returns a host-side preference.
func (h *Host) Pref(key string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.prefs[key]
	return v, ok
}

// ProgressPosts returns the recorded POST /api/progress bodies.
func (h *Host) ProgressPosts() []ProgressPost {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]ProgressPost(nil), h.progressPosts...)
}

// Logs returns the recorded POST /api/log bodies.
func (h *Host) Logs() []LogLine {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LogLine(nil), h.logs...)
}

// StreamQueries returns the raw query of every stream request.
func (h *Host) StreamQueries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.streamQueries...)
}

// SawClientID reports whether any request carried id in X-Client-Id.
func (h *Host) SawClientID(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clientIDs[id]
}

func (h *Host) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path[len("/api/"):]
		h.mu.Lock()
		h.requests[endpoint]++
		if id := r.Header.Get("X-Client-Id"); id != "" {
			h.clientIDs[id] = true
		}
		failing := h.failing[endpoint]
		h.mu.Unlock()

		if failing {
			writeError(w, http.StatusInternalServerError, endpoint+" unavailable")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Host) handleMedia(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	l := h.listing
	etag := h.etag
	if h.scanning > 0 {
		h.scanning--
		l.Scanning = true
	}
	h.mu.Unlock()

	l.VideosTotal = len(l.Videos)
	l.AudiosTotal = len(l.Audios)
	l.ImagesTotal = len(l.Images)
	l.OthersTotal = len(l.Others)

	refresh := r.URL.Query().Get("refresh") == "1"
	if limit, _ := strconv.Atoi(r.URL.Query().Get("limit")); limit > 0 {
		l.Videos = truncate(l.Videos, limit)
		l.Audios = truncate(l.Audios, limit)
		l.Images = truncate(l.Images, limit)
		l.Others = truncate(l.Others, limit)
		l.Limited = true
		writeJSON(w, http.StatusOK, l)
		return
	}

	if etag != "" {
		w.Header().Set("ETag", etag)
		if !refresh && r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Host) handleProbe(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	h.mu.Lock()
	p, ok := h.probes[id]
	h.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Host) handleStream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	h.mu.Lock()
	h.streamQueries = append(h.streamQueries, r.URL.RawQuery)
	s, ok := h.streams[id]
	h.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if s.contentType != "" {
		w.Header().Set("Content-Type", s.contentType)
	}
	_, _ = w.Write(s.body)
}

func (h *Host) handleGetPrefs(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	prefs := maps.Clone(h.prefs)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"prefs": prefs})
}

func (h *Host) handlePostPrefs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prefs map[string]string `json:"prefs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if len(req.Prefs) == 0 {
		writeError(w, http.StatusBadRequest, "missing prefs")
		return
	}
	h.mu.Lock()
	h.prefsPosts = append(h.prefsPosts, req.Prefs)
	maps.Copy(h.prefs, req.Prefs)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"prefs": req.Prefs})
}

func (h *Host) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	h.mu.Lock()
	t := h.progress[id]
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"time": t})
}

func (h *Host) handlePostProgress(w http.ResponseWriter, r *http.Request) {
	var req ProgressPost
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing id"})
		return
	}
	h.mu.Lock()
	h.progressPosts = append(h.progressPosts, req)
	h.progress[req.ID] = req.Time
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Host) handleLog(w http.ResponseWriter, r *http.Request) {
	var req LogLine
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	h.logs = append(h.logs, req)
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func truncate(items []media.Item, n int) []media.Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": map[string]string{"message": msg}})
}
