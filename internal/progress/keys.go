package progress

import "github.com/llehouerou/lanshelf/internal/media"

// Preference keys shared with other clients of the same host.
const (
	KeyLastActiveKind = "msp.lastActiveKind"
	KeyVolume         = "msp.volume"
	KeyMuted          = "msp.muted"
	KeyRate           = "msp.rate"
	KeyPlaylist       = "msp.playlist"
	KeyMediaETag      = "msp.media.etag"
)

func kindKey(k media.Kind, suffix string) string {
	return "msp." + k.String() + "." + suffix
}

// LastIDKey is the last selected item id for k.
func LastIDKey(k media.Kind) string { return kindKey(k, "lastId") }

// LastTimeKey is the last recorded offset for k.
func LastTimeKey(k media.Kind) string { return kindKey(k, "lastTime") }

func ShuffleKey(k media.Kind) string { return kindKey(k, "shuffle") }

func LoopKey(k media.Kind) string { return kindKey(k, "loop") }

// RememberKey holds the user override ("1" or "0") of the configured
// remember flag.
func RememberKey(k media.Kind) string { return "msp.remember." + k.String() }
