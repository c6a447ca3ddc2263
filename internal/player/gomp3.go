package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

const bytesPerFrame = 4

var errInvalidRate = errors.New("mp3: invalid sample rate")

// goMP3Decoder wraps llehouerou/go-mp3 to implement beep.StreamSeekCloser.
type goMP3Decoder struct {
	decoder *mp3.Decoder
	closer  io.Closer
	format  beep.Format
	length  int
	err     error
	readBuf []byte // reusable buffer for reading
}

// decodeGoMP3 decodes an MP3 stream with llehouerou/go-mp3.
func decodeGoMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, beep.Format{}, errInvalidRate
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2, // go-mp3 always outputs stereo
		Precision:   2, // 16-bit
	}

	d := &goMP3Decoder{
		decoder: decoder,
		closer:  rc,
		format:  format,
		length:  max(int(decoder.SampleCount()), 0),
		readBuf: make([]byte, 8192),
	}

	return d, format, nil
}

// Stream decodes interleaved 16-bit stereo frames into samples.
func (d *goMP3Decoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}
	want := len(samples) * bytesPerFrame
	if len(d.readBuf) < want {
		d.readBuf = make([]byte, want)
	}
	got, err := io.ReadFull(d.decoder, d.readBuf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		d.err = err
		return 0, false
	}
	frames := got / bytesPerFrame
	for i := range frames {
		b := d.readBuf[i*bytesPerFrame:]
		samples[i][0] = pcm16(b[0:2])
		samples[i][1] = pcm16(b[2:4])
	}
	return frames, frames > 0
}

func pcm16(b []byte) float64 {
	return float64(int16(binary.LittleEndian.Uint16(b))) / 32768.0 //nolint:gosec // audio samples
}

// Err returns any error that occurred during streaming.
func (d *goMP3Decoder) Err() error {
	return d.err
}

// Len returns the total number of samples.
func (d *goMP3Decoder) Len() int {
	return d.length
}

// Position returns the current sample position.
func (d *goMP3Decoder) Position() int {
	return int(d.decoder.SamplePosition())
}

// Seek seeks to the given sample position.
func (d *goMP3Decoder) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	length := d.Len()
	if p > length {
		p = length
	}

	err := d.decoder.SeekToSample(int64(p))
	if err != nil {
		return err
	}
	d.err = nil
	return nil
}

// Close closes the underlying reader.
func (d *goMP3Decoder) Close() error {
	return d.closer.Close()
}
