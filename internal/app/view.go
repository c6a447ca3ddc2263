package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lanshelf/internal/icons"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/ui/headerbar"
	"github.com/llehouerou/lanshelf/internal/ui/layout"
	lyricsview "github.com/llehouerou/lanshelf/internal/ui/lyrics"
	"github.com/llehouerou/lanshelf/internal/ui/playerbar"
	"github.com/llehouerou/lanshelf/internal/ui/render"
	"github.com/llehouerou/lanshelf/internal/ui/styles"
)

func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	parts := []string{headerbar.Render(m.Kind, m.listing, m.status, m.Width)}

	h := m.listHeight()
	showLyrics := m.lyricsVisible()
	list := m.renderList(layout.ListWidth(m.Width, showLyrics), h)
	if showLyrics {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, m.renderLyrics(layout.LyricsWidth(m.Width, true), h))
	}
	parts = append(parts, list)

	if bar := playerbar.Render(playerbar.NewState(m.view), m.Width); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// listHeight returns the number of list rows inside the panel border.
func (m Model) listHeight() int {
	return layout.ListHeight(m.Height, layout.ContentOpts{
		PlayerBarHeight: playerbar.Height(playerbar.NewState(m.view)),
		FooterHeight:    lipgloss.Height(m.footer()),
	})
}

func (m Model) lyricsVisible() bool {
	return m.showLyrics && m.Kind == media.KindAudio && m.view.Lyrics != nil && layout.ShowLyrics(m.Width)
}

func (m Model) footer() string {
	helpLine := m.help.View(m.helpKeys)
	if m.notice == "" {
		return helpLine
	}
	notice := styles.T().S().Warning.Render(render.Truncate(m.notice, m.Width))
	return notice + "\n" + helpLine
}

func (m Model) renderList(width, height int) string {
	st := styles.T().S()
	inner := max(width-layout.BorderHeight, 0)
	items := m.items()

	var rows []string
	if len(items) == 0 {
		text := "No items"
		if m.listing == nil || m.status.Limited {
			text = "Loading…"
		}
		rows = append(rows, st.Subtle.Render(text))
	}

	cur := m.cursors[m.Kind]
	start, end := cur.VisibleRange(len(items), height)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(items[i], i == cur.Pos(), inner))
	}

	return styles.T().Panel(true).
		Width(inner).
		Height(height).
		Render(strings.Join(rows, "\n"))
}

func (m Model) renderRow(it media.Item, atCursor bool, width int) string {
	st := styles.T().S()
	right := strings.TrimSpace(it.ShareLabel + "  " + render.Size(it.Size))
	if it.LyricsID != "" {
		right = icons.Lyrics() + " " + right
	}
	nameWidth := max(width-lipgloss.Width(right)-2, 0)
	left := render.Truncate(icons.FormatItem(it.Kind, it.Name), nameWidth)
	row := render.Row(left, st.Muted.Render(right), width)

	switch {
	case atCursor:
		return st.Cursor.Width(width).Render(row)
	case m.view.Item != nil && m.view.Item.ID == it.ID:
		return st.Current.Render(row)
	default:
		return row
	}
}

func (m Model) renderLyrics(width, height int) string {
	inner := max(width-layout.BorderHeight, 0)
	body := lyricsview.Render(m.view.Lyrics, m.view.LyricIndex, inner, height)
	return styles.T().Panel(false).Width(inner).Height(height).Render(body)
}
