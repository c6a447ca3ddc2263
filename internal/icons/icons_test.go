package icons

import (
	"testing"

	"github.com/llehouerou/lanshelf/internal/media"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  Icons
	}{
		{"nerd style", "nerd", nerdIcons},
		{"unicode style", "unicode", unicodeIcons},
		{"none style", "none", noneIcons},
		{"empty defaults to none", "", noneIcons},
		{"unknown defaults to none", "fancy", noneIcons},
		{"case sensitive", "NERD", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			t.Cleanup(func() { Init("none") })
			if current != tt.want {
				t.Errorf("Init(%q) selected %+v", tt.style, current)
			}
		})
	}
}

func TestFormatItem(t *testing.T) {
	Init("unicode")
	t.Cleanup(func() { Init("none") })

	tests := []struct {
		kind media.Kind
		want string
	}{
		{media.KindVideo, "🎬 clip.mkv"},
		{media.KindAudio, "🎵 clip.mkv"},
		{media.KindImage, "🖼 clip.mkv"},
		{media.KindOther, "📄 clip.mkv"},
		{media.KindNone, "📄 clip.mkv"},
	}
	for _, tt := range tests {
		if got := FormatItem(tt.kind, "clip.mkv"); got != tt.want {
			t.Errorf("FormatItem(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNoneStyle(t *testing.T) {
	Init("none")

	if got := FormatItem(media.KindAudio, "a.mp3"); got != "a.mp3" {
		t.Errorf("FormatItem = %q, want bare name", got)
	}
	for name, got := range map[string]string{
		"shuffle": Shuffle(),
		"loop":    Loop(),
		"lyrics":  Lyrics(),
		"volume":  Volume(),
	} {
		if got == "" {
			t.Errorf("%s icon is empty in none style", name)
		}
	}
}
