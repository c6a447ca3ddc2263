// Package playerbar renders the bottom status bar of the current selection.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lanshelf/internal/icons"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/playback"
	"github.com/llehouerou/lanshelf/internal/ui/render"
	"github.com/llehouerou/lanshelf/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	loadSymbol  = "…"
	endSymbol   = "■"
	errSymbol   = "✗"
)

// State holds everything needed to render the player bar.
type State struct {
	Status      playback.State
	Kind        media.Kind
	Title       string
	Position    float64
	Volume      float64
	Index       int
	Total       int
	Shuffle     bool
	Loop        bool
	Transcoding bool
	Hint        string
	Error       string
}

// NewState builds the bar state from a controller view. The zero State
// is returned when nothing is selected.
func NewState(v playback.View) State {
	if v.Item == nil {
		return State{}
	}
	s := State{
		Status:      v.State,
		Kind:        v.Item.Kind,
		Title:       v.Item.Title(),
		Position:    v.Position,
		Volume:      v.Volume,
		Shuffle:     v.Shuffle,
		Loop:        v.Loop,
		Transcoding: v.Transcoding,
		Hint:        v.Hint,
		Error:       v.Error,
	}
	if v.PlaylistKind == v.Item.Kind && len(v.Playlist) > 1 {
		s.Index = v.Index + 1
		s.Total = len(v.Playlist)
	}
	return s
}

// Visible reports whether the bar has anything to show.
func (s State) Visible() bool {
	return s.Title != ""
}

// Height returns the rendered height including borders.
func Height(s State) int {
	if !s.Visible() {
		return 0
	}
	if s.Error != "" || s.Hint != "" {
		return 4
	}
	return 3
}

// Render returns the bar for the given width, or "" when not visible.
func Render(s State, width int) string {
	if !s.Visible() {
		return ""
	}
	st := styles.T().S()
	inner := max(width-6, 0)

	var right []string
	if s.Total > 0 {
		right = append(right, fmt.Sprintf("%d/%d", s.Index, s.Total))
	}
	if s.Kind == media.KindAudio {
		if s.Shuffle {
			right = append(right, icons.Shuffle())
		}
		if s.Loop {
			right = append(right, icons.Loop())
		}
	}
	if s.Kind.Timed() {
		pos := render.Offset(s.Position)
		if s.Transcoding {
			pos += " ~"
		}
		right = append(right, pos, fmt.Sprintf("%s %3d%%", icons.Volume(), int(s.Volume*100+0.5)))
	}
	rightText := st.Muted.Render(strings.Join(right, "  "))

	left := symbol(s.Status) + "  "
	titleWidth := max(inner-lipgloss.Width(left)-lipgloss.Width(rightText)-2, 0)
	left += st.Title.Render(render.Truncate(icons.FormatItem(s.Kind, s.Title), titleWidth))

	lines := []string{render.Row(left, rightText, inner)}
	switch {
	case s.Error != "":
		lines = append(lines, st.Error.Render(render.Truncate(s.Error, inner)))
	case s.Hint != "":
		lines = append(lines, st.Hint.Render(render.Truncate(s.Hint, inner)))
	}

	return styles.T().Panel(false).Padding(0, 2).Width(width - 2).Render(strings.Join(lines, "\n"))
}

func symbol(s playback.State) string {
	switch s {
	case playback.StatePlaying:
		return playSymbol
	case playback.StateLoading:
		return loadSymbol
	case playback.StateEnded:
		return endSymbol
	case playback.StateError:
		return errSymbol
	default:
		return pauseSymbol
	}
}
