// Package icons provides the glyphs shown next to items and player modes.
package icons

import "github.com/llehouerou/lanshelf/internal/media"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Video   string
	Audio   string
	Image   string
	Other   string
	Shuffle string
	Loop    string
	Lyrics  string
	Volume  string
}

var (
	nerdIcons = Icons{
		Video:   " ", // nf-fa-video_camera
		Audio:   " ", // nf-fa-music
		Image:   " ", // nf-fa-picture_o
		Other:   " ", // nf-fa-file
		Shuffle: "󰒟", // nf-md-shuffle
		Loop:    "󰑖", // nf-md-repeat
		Lyrics:  "󰍡", // nf-md-message_text
		Volume:  "󰕾", // nf-md-volume_high
	}

	unicodeIcons = Icons{
		Video:   "🎬 ",
		Audio:   "🎵 ",
		Image:   "🖼 ",
		Other:   "📄 ",
		Shuffle: "🔀",
		Loop:    "🔁",
		Lyrics:  "💬",
		Volume:  "🔊",
	}

	noneIcons = Icons{
		Shuffle: "[S]",
		Loop:    "[L]",
		Lyrics:  "[T]",
		Volume:  "vol",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init selects the icon set. Call this once at startup with the config
// value; unknown styles fall back to none.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Kind returns the prefix icon for items of kind k.
func Kind(k media.Kind) string {
	switch k {
	case media.KindVideo:
		return current.Video
	case media.KindAudio:
		return current.Audio
	case media.KindImage:
		return current.Image
	default:
		return current.Other
	}
}

// FormatItem prefixes name with the icon of kind k.
func FormatItem(k media.Kind, name string) string {
	return Kind(k) + name
}

func Shuffle() string {
	return current.Shuffle
}

func Loop() string {
	return current.Loop
}

func Lyrics() string {
	return current.Lyrics
}

func Volume() string {
	return current.Volume
}
