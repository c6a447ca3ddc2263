package lyrics

import "time"

// Cursor tracks the active line of a lyrics track during playback.
type Cursor struct {
	lyrics *Lyrics
	active int
}

// NewCursor returns a cursor over l with no active line.
func NewCursor(l *Lyrics) *Cursor {
	return &Cursor{lyrics: l, active: -1}
}

// Lyrics returns the tracked lyrics.
func (c *Cursor) Lyrics() *Lyrics {
	if c == nil {
		return nil
	}
	return c.lyrics
}

// Active returns the active line index, -1 before the first update.
func (c *Cursor) Active() int {
	if c == nil {
		return -1
	}
	return c.active
}

// Update moves the cursor to the line active at pos. It reports whether
// the active line changed; force reports a change even when it did not,
// which callers use to re-render after a seek.
func (c *Cursor) Update(pos time.Duration, force bool) (int, bool) {
	if c == nil || c.lyrics == nil || len(c.lyrics.Lines) == 0 {
		return -1, false
	}
	idx := c.lyrics.Locate(pos)
	if !force && idx == c.active {
		return idx, false
	}
	c.active = idx
	return idx, true
}
