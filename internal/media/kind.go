// Package media defines the items a media host shares and the listing that groups them.
package media

import (
	"fmt"
	"strings"
)

// Kind classifies a media item.
type Kind int

const (
	// KindNone is the zero kind, used where no kind is active.
	KindNone Kind = iota
	KindVideo
	KindAudio
	KindImage
	KindOther
)

// Kinds lists the playable-or-viewable kinds in display order.
var Kinds = []Kind{KindVideo, KindAudio, KindImage, KindOther}

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindImage:
		return "image"
	case KindOther:
		return "other"
	default:
		return ""
	}
}

// Timed reports whether items of this kind have a playback position.
func (k Kind) Timed() bool {
	return k == KindVideo || k == KindAudio
}

// ParseKind parses a kind name. The empty string parses to KindNone.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return KindNone, nil
	case "video":
		return KindVideo, nil
	case "audio":
		return KindAudio, nil
	case "image":
		return KindImage, nil
	case "other":
		return KindOther, nil
	}
	return KindNone, fmt.Errorf("unknown media kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
