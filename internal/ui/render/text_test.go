package render

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Track 01.mp3", "Track 01.mp3"},
		{"tab kept", "a\tb", "a\tb"},
		{"control dropped", "a\x07b\nc", "abc"},
		{"nbsp replaced", "a\u00a0b", "a b"},
		{"invalid byte dropped", "a\xffb", "ab"},
		{"cjk kept", "周杰伦 - 晴天", "周杰伦 - 晴天"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"zero width", "hello", 0, ""},
		{"wide characters", "晴天晴天", 5, "晴天…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	for _, width := range []int{1, 4, 12} {
		got := Fit("some long name.mkv", width)
		if w := runewidth.StringWidth(got); w != width {
			t.Errorf("Fit width %d: got %d cells (%q)", width, w, got)
		}
	}
}

func TestRow(t *testing.T) {
	if got := Row("left", "right", 12); got != "left   right" {
		t.Errorf("Row = %q", got)
	}
	if got := Row("left", "right", 4); got != "left right" {
		t.Errorf("Row narrow = %q", got)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "0:00"},
		{-3, "0:00"},
		{59.9, "0:59"},
		{61, "1:01"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		if got := Offset(tt.sec); got != tt.want {
			t.Errorf("Offset(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestSize(t *testing.T) {
	if got := Size(0); got != "" {
		t.Errorf("Size(0) = %q, want empty", got)
	}
	if got := Size(4_200_000); got != "4.2 MB" {
		t.Errorf("Size = %q", got)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := Age(0, now); got != "" {
		t.Errorf("Age(0) = %q, want empty", got)
	}
	if got := Age(now.Add(-72*time.Hour).Unix(), now); got != "3 days ago" {
		t.Errorf("Age = %q", got)
	}
}
