package player

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

var errUnknownFormat = errors.New("unrecognized stream format")

type format int

const (
	formatUnknown format = iota
	formatMP3
	formatFLAC
	formatWAV
)

func (f format) String() string {
	switch f {
	case formatMP3:
		return "MP3"
	case formatFLAC:
		return "FLAC"
	case formatWAV:
		return "WAV"
	default:
		return "?"
	}
}

// memReader is an in-memory stream the decoders can seek in.
type memReader struct {
	*bytes.Reader
}

func (memReader) Close() error { return nil }

// id3Size returns the length of a leading ID3v2 tag, or 0.
// The size is a syncsafe integer: 7 bits per byte.
func id3Size(data []byte) int {
	if len(data) < 10 || string(data[:3]) != "ID3" {
		return 0
	}
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	return min(10+size, len(data))
}

// sniff identifies the container from its leading bytes, falling back to the
// content type.
func sniff(data []byte, contentType string) format {
	body := data[id3Size(data):]
	switch {
	case bytes.HasPrefix(body, []byte("fLaC")):
		return formatFLAC
	case len(body) >= 12 && string(body[:4]) == "RIFF" && string(body[8:12]) == "WAVE":
		return formatWAV
	case len(body) >= 2 && body[0] == 0xFF && body[1]&0xE0 == 0xE0:
		return formatMP3
	case id3Size(data) > 0:
		return formatMP3
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "audio/mpeg"), strings.HasPrefix(ct, "audio/mp3"):
		return formatMP3
	case strings.HasPrefix(ct, "audio/flac"):
		return formatFLAC
	case strings.Contains(ct, "wav"):
		return formatWAV
	}
	return formatUnknown
}

func decode(data []byte, contentType string) (beep.StreamSeekCloser, beep.Format, error) {
	switch sniff(data, contentType) {
	case formatMP3:
		return decodeGoMP3(memReader{bytes.NewReader(data)})
	case formatFLAC:
		return flac.Decode(memReader{bytes.NewReader(data[id3Size(data):])})
	case formatWAV:
		return wav.Decode(memReader{bytes.NewReader(data)})
	}
	return nil, beep.Format{}, errUnknownFormat
}
