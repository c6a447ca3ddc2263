// Package lyrics parses time-indexed lyrics and tracks the active line
// during playback.
package lyrics

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Lookahead lets a line become active slightly before its timestamp.
const Lookahead = 50 * time.Millisecond

// Line represents a single timestamped lyric line.
type Line struct {
	Time time.Duration
	Text string
}

// Lyrics contains parsed lyrics with optional metadata.
type Lyrics struct {
	Lines  []Line
	Title  string
	Artist string
	Album  string
}

// Locate returns the index of the line active at pos: the greatest i with
// Lines[i].Time <= pos+Lookahead. Before the first line it returns 0.
// Empty lyrics return -1.
func (l *Lyrics) Locate(pos time.Duration) int {
	if l == nil || len(l.Lines) == 0 {
		return -1
	}
	limit := pos + Lookahead
	// Lines are sorted, so the first line past limit ends the search.
	n := sort.Search(len(l.Lines), func(i int) bool {
		return l.Lines[i].Time > limit
	})
	return max(n-1, 0)
}

// Regular expressions for parsing LRC format
var (
	// Matches timestamps like [01:02], [01:02.3], [01:02.34] or [01:02,345]
	timestampRe = regexp.MustCompile(`\[(\d{1,2}):(\d{2})(?:[.,](\d{1,3}))?\]`)

	// Matches any bracketed tag, removed from the line text
	tagRe = regexp.MustCompile(`\[[^\]]+\]`)

	// Matches metadata tags like [ar:Artist Name]
	metadataRe = regexp.MustCompile(`^\[([a-z]+):(.+)\]$`)
)

// Parse parses LRC lyrics from a reader. Lines without a timestamp are
// ignored. A line with several timestamps yields one entry per timestamp,
// all with the same text. The result is ordered by time; entries with equal
// times keep their input order.
func Parse(r io.Reader) (*Lyrics, error) {
	lyrics := &Lyrics{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanLines)

	for scanner.Scan() {
		line := scanner.Text()

		if meta := metadataRe.FindStringSubmatch(strings.TrimSpace(line)); meta != nil {
			value := strings.TrimSpace(meta[2])
			switch meta[1] {
			case "ar":
				lyrics.Artist = value
			case "ti":
				lyrics.Title = value
			case "al":
				lyrics.Album = value
			}
			continue
		}

		matches := timestampRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		text := strings.TrimSpace(tagRe.ReplaceAllString(line, ""))
		for _, m := range matches {
			lyrics.Lines = append(lyrics.Lines, Line{
				Time: parseTimestamp(m[1], m[2], m[3]),
				Text: text,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(lyrics.Lines, func(i, j int) bool {
		return lyrics.Lines[i].Time < lyrics.Lines[j].Time
	})

	return lyrics, nil
}

// ParseString parses LRC lyrics held in a string.
func ParseString(s string) *Lyrics {
	// Reading from a string only fails on lines over the scanner limit.
	l, err := Parse(strings.NewReader(s))
	if err != nil {
		return &Lyrics{}
	}
	return l
}

// parseTimestamp converts the captured minute, second and fraction groups.
// The fraction is right-padded to milliseconds, so ".5" is 500ms.
func parseTimestamp(mm, ss, frac string) time.Duration {
	minutes, _ := strconv.Atoi(mm)
	seconds, _ := strconv.Atoi(ss)

	var millis int
	if frac != "" {
		millis, _ = strconv.Atoi(frac + strings.Repeat("0", 3-len(frac)))
	}

	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
}

// scanLines splits on \n, \r\n and lone \r.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		switch b {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// Need one more byte to tell \r from \r\n.
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
