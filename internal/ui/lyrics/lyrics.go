// Package lyrics renders the synchronized lyrics panel.
package lyrics

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lanshelf/internal/lyrics"
	"github.com/llehouerou/lanshelf/internal/ui/render"
	"github.com/llehouerou/lanshelf/internal/ui/styles"
)

const emptyText = "No lyrics"

// Window returns the [start, end) range of lines shown when active is
// highlighted in a panel of height rows. The active line sits in the
// middle until either end of the track is reached.
func Window(total, active, height int) (start, end int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start = max(active-height/2, 0)
	start = min(start, total-height)
	return start, start + height
}

// Render draws the lyrics panel. Every line is truncated and centred to
// width; the active line is highlighted.
func Render(l *lyrics.Lyrics, active, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	st := styles.T().S()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if l == nil || len(l.Lines) == 0 {
		rows := make([]string, height)
		rows[height/2] = st.Subtle.Render(emptyText)
		for i := range rows {
			rows[i] = center.Render(rows[i])
		}
		return strings.Join(rows, "\n")
	}

	start, end := Window(len(l.Lines), active, height)
	rows := make([]string, 0, height)
	for i := start; i < end; i++ {
		text := render.Truncate(l.Lines[i].Text, width)
		if i == active {
			text = st.LyricActive.Render(text)
		} else {
			text = st.Muted.Render(text)
		}
		rows = append(rows, center.Render(text))
	}
	for len(rows) < height {
		rows = append(rows, strings.Repeat(" ", width))
	}
	return strings.Join(rows, "\n")
}
