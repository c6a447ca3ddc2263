//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lanshelf/internal/media"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/lanshelf/progress.db",
			expected: filepath.Join(home, "lanshelf", "progress.db"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/lib/lanshelf.db",
			expected: "/var/lib/lanshelf.db",
		},
		{
			name:     "relative path unchanged",
			input:    "data/lanshelf.db",
			expected: "data/lanshelf.db",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}

	if paths[1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "config.toml")
	}

	expectedFirst := filepath.Join(xdg.ConfigHome, "lanshelf", "config.toml")
	if paths[0] != expectedFirst {
		t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
[host]
url = "http://nas.local:8080/"
timeout = "5s"

[playback]
locale = "en"
playlist = false

[playback.audio]
scope = "folder"
shuffle = true
transcode = true
passthrough = ["MP3", "flac"]

[playback.video]
remember = false
maybe_playable = ["ts"]

[store]
batch_window = "100ms"
throttle = "2s"

[listing]
first_paint_limit = 50
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "http://nas.local:8080", cfg.Host.URL)
	assert.Equal(t, 5*time.Second, cfg.GetHostConfig().Timeout)
	assert.Equal(t, 3, cfg.GetHostConfig().Retries)
	assert.Equal(t, "en", cfg.CollationLocale())
	assert.False(t, cfg.PlaylistEnabled())
	assert.True(t, cfg.ResumeEnabled())

	audio := cfg.Kind(media.KindAudio)
	assert.Equal(t, "folder", audio.Scope)
	assert.True(t, audio.Shuffle)
	assert.True(t, audio.Transcode)
	assert.Equal(t, []string{".mp3", ".flac"}, audio.Passthrough)
	assert.True(t, audio.RememberEnabled())

	video := cfg.Kind(media.KindVideo)
	assert.Equal(t, "folder", video.Scope)
	assert.False(t, video.RememberEnabled())
	assert.Equal(t, []string{".ts"}, video.MaybePlayable)

	store := cfg.GetStoreConfig()
	assert.Equal(t, 100*time.Millisecond, store.BatchWindow)
	assert.Equal(t, 2*time.Second, store.Throttle)
	assert.Equal(t, 2000, store.MaxEntries)

	assert.Equal(t, 50, cfg.GetListingConfig().FirstPaintLimit)
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	first := writeConfig(t, "[host]\nurl = \"http://a\"\n")
	second := writeConfig(t, "[host]\nurl = \"http://b\"\n")

	cfg, err := LoadFrom(first, second, filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://b", cfg.Host.URL)
	assert.True(t, cfg.HasHost())
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[host\nurl = ")
	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestKind_Defaults(t *testing.T) {
	cfg := Config{}

	video := cfg.Kind(media.KindVideo)
	assert.Equal(t, "folder", video.Scope)
	assert.Equal(t, []string{".mp4", ".m4v", ".webm"}, video.Passthrough)
	assert.Equal(t, []string{".mkv", ".avi"}, video.MaybePlayable)
	assert.False(t, video.Transcode)
	assert.True(t, video.RememberEnabled())
	assert.True(t, video.AutoplayEnabled())

	audio := cfg.Kind(media.KindAudio)
	assert.Equal(t, "all", audio.Scope)
	assert.Equal(t, []string{".mp3", ".m4a", ".aac", ".wav"}, audio.Passthrough)
	assert.Empty(t, audio.MaybePlayable)

	assert.Equal(t, "folder", cfg.Kind(media.KindImage).Scope)
	assert.Equal(t, "all", cfg.Kind(media.KindOther).Scope)
	assert.Equal(t, "zh", cfg.CollationLocale())
	assert.True(t, cfg.PlaylistEnabled())
}

func TestGetStoreConfig_Defaults(t *testing.T) {
	cfg := Config{}
	store := cfg.GetStoreConfig()

	if store.BatchWindow != 300*time.Millisecond {
		t.Errorf("BatchWindow = %v, want 300ms", store.BatchWindow)
	}
	if store.Throttle != 1500*time.Millisecond {
		t.Errorf("Throttle = %v, want 1.5s", store.Throttle)
	}
}

func TestGetListingConfig_Defaults(t *testing.T) {
	cfg := Config{}
	listing := cfg.GetListingConfig()

	if listing.FirstPaintLimit != 200 {
		t.Errorf("FirstPaintLimit = %d, want 200", listing.FirstPaintLimit)
	}
	if listing.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", listing.PollInterval)
	}
	if listing.MaxPolls != 30 {
		t.Errorf("MaxPolls = %d, want 30", listing.MaxPolls)
	}
}

func TestGetHostConfig_NegativeRetriesDisable(t *testing.T) {
	cfg := Config{Host: HostConfig{Retries: -1}}
	if got := cfg.GetHostConfig().Retries; got != 0 {
		t.Errorf("Retries = %d, want 0", got)
	}
}

func TestGetLogConfig_Defaults(t *testing.T) {
	cfg := Config{}
	log := cfg.GetLogConfig()
	assert.Equal(t, "info", log.Level)
	assert.Equal(t, filepath.Join(xdg.StateHome, "lanshelf", "lanshelf.log"), log.File)
}
