// Package cursor tracks the highlighted row of a scrolling list.
package cursor

// Cursor holds the highlighted position and the first visible row. List
// length and viewport height are passed in because both change with the
// listing and the terminal.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below the cursor
}

func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int {
	return c.pos
}

func (c Cursor) Offset() int {
	return c.offset
}

// Move shifts the cursor by delta rows, clamped to the list.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump places the cursor at pos, clamped to the list, and scrolls it into
// view.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.scroll(listLen, height)
}

// ClampToBounds keeps the cursor inside a list that may have shrunk.
func (c *Cursor) ClampToBounds(listLen, height int) {
	c.Jump(c.pos, listLen, height)
}

func (c *Cursor) scroll(listLen, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// VisibleRange returns the visible rows as [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// HandleKey applies a navigation key and reports whether it was one.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, listLen, height)
	case "k", "up":
		c.Move(-1, listLen, height)
	case "g", "home":
		c.Jump(0, listLen, height)
	case "G", "end":
		c.Jump(listLen-1, listLen, height)
	case "pgdown", "ctrl+d":
		c.Move(max(height/2, 1), listLen, height)
	case "pgup", "ctrl+u":
		c.Move(-max(height/2, 1), listLen, height)
	default:
		return false
	}
	return true
}

func clamp(v, maxVal int) int {
	return max(0, min(v, maxVal))
}
