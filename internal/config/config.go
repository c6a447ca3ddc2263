package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/lanshelf/internal/media"
)

// AppName names the config, data and state directories.
const AppName = "lanshelf"

type Config struct {
	// Media host connection
	Host HostConfig `koanf:"host"`

	// Playback behavior, with per-kind overrides
	Playback PlaybackConfig `koanf:"playback"`

	// Local progress tier and remote write batching
	Store StoreConfig `koanf:"store"`

	// Listing fetch and scan polling
	Listing ListingConfig `koanf:"listing"`

	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	UI      UIConfig      `koanf:"ui"`
}

// HostConfig holds the media host connection settings.
type HostConfig struct {
	URL     string        `koanf:"url"`     // e.g., "http://192.168.1.10:8080"
	Timeout time.Duration `koanf:"timeout"` // per request (default: 15s)
	Retries int           `koanf:"retries"` // retry attempts for failed requests (default: 3)
}

// PlaybackConfig holds playback settings shared by all kinds.
type PlaybackConfig struct {
	Playlist *bool  `koanf:"playlist"` // build playlists on user selection (default: true)
	Locale   string `koanf:"locale"`   // collation locale for folder ordering (default: "zh")
	Resume   *bool  `koanf:"resume"`   // resume the last item on start (default: true)

	Video KindConfig `koanf:"video"`
	Audio KindConfig `koanf:"audio"`
	Image KindConfig `koanf:"image"`
}

// KindConfig holds per-kind playback settings.
type KindConfig struct {
	Scope         string   `koanf:"scope"`          // "all", "share" or "folder"
	Shuffle       bool     `koanf:"shuffle"`        // initial shuffle state
	Loop          bool     `koanf:"loop"`           // initial loop state
	Remember      *bool    `koanf:"remember"`       // persist last item and offset (default: true)
	Autoplay      *bool    `koanf:"autoplay"`       // start playing when selected (default: true)
	Transcode     bool     `koanf:"transcode"`      // stream through the host transcoder
	Passthrough   []string `koanf:"passthrough"`    // extensions streamed as-is when transcoding
	MaybePlayable []string `koanf:"maybe_playable"` // extensions tried even if the element cannot tell
}

// StoreConfig holds progress persistence settings.
type StoreConfig struct {
	Path        string        `koanf:"path"`         // sqlite file (default: XDG data dir)
	BatchWindow time.Duration `koanf:"batch_window"` // remote write batching window (default: 300ms)
	Throttle    time.Duration `koanf:"throttle"`     // minimum interval between position writes (default: 1.5s)
	MaxEntries  int           `koanf:"max_entries"`  // per-item progress rows kept locally (default: 2000)
}

// ListingConfig holds listing fetch settings.
type ListingConfig struct {
	FirstPaintLimit int           `koanf:"first_paint_limit"` // items per kind on first fetch (default: 200)
	PollInterval    time.Duration `koanf:"poll_interval"`     // re-fetch interval while the host scans (default: 2s)
	MaxPolls        int           `koanf:"max_polls"`         // re-fetch attempts while scanning (default: 30)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // logrus level name (default: "info")
	File   string `koanf:"file"`   // log file (default: XDG state dir)
	JSON   bool   `koanf:"json"`   // JSON formatter instead of text
	Remote bool   `koanf:"remote"` // forward warnings and errors to the host
}

// UIConfig holds terminal display settings.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" or "none" (default)
}

// MetricsConfig holds the optional metrics endpoint.
type MetricsConfig struct {
	Addr string `koanf:"addr"` // e.g., "127.0.0.1:9464"; empty disables
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads configuration from the given files, later files winning.
// Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Host.URL = strings.TrimSuffix(cfg.Host.URL, "/")

	if cfg.Store.Path != "" {
		cfg.Store.Path = expandPath(cfg.Store.Path)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/lanshelf/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, AppName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasHost returns true if a media host is configured.
func (c *Config) HasHost() bool {
	return c.Host.URL != ""
}

// GetHostConfig returns the host configuration with defaults applied.
func (c *Config) GetHostConfig() HostConfig {
	cfg := c.Host
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	} else if cfg.Retries == 0 {
		cfg.Retries = 3
	}
	return cfg
}

// PlaylistEnabled reports whether user selections build playlists.
func (c *Config) PlaylistEnabled() bool {
	return boolOr(c.Playback.Playlist, true)
}

// ResumeEnabled reports whether the last item is restored on start.
func (c *Config) ResumeEnabled() bool {
	return boolOr(c.Playback.Resume, true)
}

// CollationLocale returns the locale used for folder ordering.
func (c *Config) CollationLocale() string {
	if c.Playback.Locale == "" {
		return "zh"
	}
	return c.Playback.Locale
}

// Kind returns the playback settings for kind k with defaults applied.
func (c *Config) Kind(k media.Kind) KindConfig {
	var cfg KindConfig
	switch k {
	case media.KindVideo:
		cfg = c.Playback.Video
		if cfg.Scope == "" {
			cfg.Scope = "folder"
		}
		if cfg.Passthrough == nil {
			cfg.Passthrough = []string{".mp4", ".m4v", ".webm"}
		}
		if cfg.MaybePlayable == nil {
			cfg.MaybePlayable = []string{".mkv", ".avi"}
		}
	case media.KindAudio:
		cfg = c.Playback.Audio
		if cfg.Scope == "" {
			cfg.Scope = "all"
		}
		if cfg.Passthrough == nil {
			cfg.Passthrough = []string{".mp3", ".m4a", ".aac", ".wav"}
		}
	case media.KindImage:
		cfg = c.Playback.Image
		if cfg.Scope == "" {
			cfg.Scope = "folder"
		}
	default:
		cfg.Scope = "all"
	}
	cfg.Passthrough = normalizeExts(cfg.Passthrough)
	cfg.MaybePlayable = normalizeExts(cfg.MaybePlayable)
	return cfg
}

// RememberEnabled reports whether progress is persisted for this kind.
func (k KindConfig) RememberEnabled() bool {
	return boolOr(k.Remember, true)
}

// AutoplayEnabled reports whether a selection starts playing once ready.
func (k KindConfig) AutoplayEnabled() bool {
	return boolOr(k.Autoplay, true)
}

// GetStoreConfig returns the store configuration with defaults applied.
func (c *Config) GetStoreConfig() StoreConfig {
	cfg := c.Store
	if cfg.BatchWindow <= 0 {
		cfg.BatchWindow = 300 * time.Millisecond
	}
	if cfg.Throttle <= 0 {
		cfg.Throttle = 1500 * time.Millisecond
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 2000
	}
	return cfg
}

// GetListingConfig returns the listing configuration with defaults applied.
func (c *Config) GetListingConfig() ListingConfig {
	cfg := c.Listing
	if cfg.FirstPaintLimit <= 0 {
		cfg.FirstPaintLimit = 200
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = 30
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, AppName, AppName+".log")
	}
	return cfg
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
