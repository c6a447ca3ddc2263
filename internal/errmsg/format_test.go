//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpListingLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpListingLoad,
			err:      errors.New("connection refused"),
			expected: "Failed to load media listing: connection refused",
		},
		{
			name:     "progress operation",
			op:       OpProgressSave,
			err:      errors.New("disk full"),
			expected: "Failed to save progress: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			expected: "",
		},
		{
			name:     "with context",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      errors.New("timeout"),
			expected: "Failed to start playback 'song.mp3': timeout",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpLyricsLoad,
			err:      errors.New("not found"),
			expected: "Failed to load lyrics: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if got := WithHint("Decode Failed", "Codec: MKV / HEVC / DTS"); got != "Decode Failed · Codec: MKV / HEVC / DTS" {
		t.Errorf("WithHint() = %q", got)
	}
	if got := WithHint("Decode Failed", ""); got != "Decode Failed" {
		t.Errorf("WithHint() without hint = %q", got)
	}
	if got := WithHint("", "hint"); got != "hint" {
		t.Errorf("WithHint() without message = %q", got)
	}
}
