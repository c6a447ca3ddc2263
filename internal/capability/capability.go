// Package capability decides whether the output can play an item and
// collects advisory codec metadata from the host.
package capability

import (
	"strings"

	"github.com/samber/lo"

	"github.com/llehouerou/lanshelf/internal/config"
	"github.com/llehouerou/lanshelf/internal/media"
)

var mimeTypes = map[media.Kind]map[string]string{
	media.KindVideo: {
		".mp4":  "video/mp4",
		".m4v":  "video/mp4",
		".webm": "video/webm",
		".ogg":  "video/ogg",
		".ogv":  "video/ogg",
		".mov":  "video/quicktime",
		".mkv":  "video/x-matroska",
		".avi":  "video/x-msvideo",
	},
	media.KindAudio: {
		".mp3":  "audio/mpeg",
		".m4a":  "audio/mp4",
		".aac":  "audio/aac",
		".wav":  "audio/wav",
		".flac": "audio/flac",
		".ogg":  "audio/ogg",
		".opus": "audio/ogg; codecs=opus",
	},
}

// MIMEFor returns the MIME type for an extension of the given kind, or ""
// when the extension is unknown.
func MIMEFor(kind media.Kind, ext string) string {
	return mimeTypes[kind][strings.ToLower(ext)]
}

// Supporter answers whether an output can decode a MIME type. An empty
// answer means no; "maybe" and "probably" mean yes.
type Supporter interface {
	CanPlayType(mime string) string
}

// KindSettings returns the playback settings of a kind.
type KindSettings func(media.Kind) config.KindConfig

// Checker decides playability from the extension and the output.
type Checker struct {
	settings KindSettings
}

// NewChecker creates a checker using per-kind settings for the
// maybe-playable allow-list.
func NewChecker(settings KindSettings) *Checker {
	return &Checker{settings: settings}
}

// CanPlay reports whether an item of kind with extension ext should be
// handed to the output. Unknown MIME types and a nil supporter are
// optimistic. Extensions in the kind's maybe-playable list are tried even
// when the output cannot tell.
func (c *Checker) CanPlay(kind media.Kind, ext string, s Supporter) bool {
	if !kind.Timed() {
		return true
	}
	ext = strings.ToLower(ext)
	mime := MIMEFor(kind, ext)
	if mime == "" || s == nil {
		return true
	}
	if s.CanPlayType(mime) != "" {
		return true
	}
	if c.settings == nil {
		return false
	}
	return lo.Contains(c.settings(kind).MaybePlayable, ext)
}

// CanPlayItem is CanPlay for an item.
func (c *Checker) CanPlayItem(it media.Item, s Supporter) bool {
	return c.CanPlay(it.Kind, it.Extension(), s)
}
