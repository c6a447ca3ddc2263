// Package headerbar renders the kind tabs above the listing.
package headerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/lanshelf/internal/media"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Tabs lists the browsable kinds in display order, with their keys.
var Tabs = []struct {
	Key  string
	Kind media.Kind
}{
	{"F1", media.KindVideo},
	{"F2", media.KindAudio},
	{"F3", media.KindImage},
	{"F4", media.KindOther},
}

var (
	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	inactiveKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	inactiveNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Status is the listing state shown on the right of the tabs.
type Status struct {
	Scanning bool
	Limited  bool
}

// Render returns the header for the given width. Each tab shows the
// host-reported count of its kind.
func Render(active media.Kind, listing *media.Listing, status Status, width int) string {
	if width < 20 {
		return ""
	}

	parts := make([]string, 0, len(Tabs))
	for _, t := range Tabs {
		name := fmt.Sprintf("%s (%d)", kindTitle(t.Kind), listing.Total(t.Kind))
		if t.Kind == active {
			parts = append(parts, activeStyle.Render(t.Key+" "+name))
			continue
		}
		parts = append(parts, inactiveKeyStyle.Render(t.Key)+" "+inactiveNameStyle.Render(name))
	}
	left := " " + strings.Join(parts, separatorStyle.Render(" │ "))

	var right string
	switch {
	case status.Scanning:
		right = statusStyle.Render("scanning… ")
	case status.Limited:
		right = statusStyle.Render("loading… ")
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func kindTitle(k media.Kind) string {
	s := k.String()
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:] + "s"
}
