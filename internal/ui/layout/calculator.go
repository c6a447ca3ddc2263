// Package layout provides pure functions for UI dimension calculations.
package layout

const (
	// HeaderHeight is the tab row above the listing.
	HeaderHeight = 1

	// BorderHeight is the vertical space taken by a panel border.
	BorderHeight = 2

	// ScrollMargin is the number of rows kept visible above and below the
	// cursor.
	ScrollMargin = 2

	// MinLyricsWidth is the terminal width below which the lyrics panel is
	// hidden.
	MinLyricsWidth = 60
)

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	PlayerBarHeight int // 0 when nothing is selected
	FooterHeight    int // help line plus status notice
}

// ContentHeight returns the height left for the listing and lyrics panels,
// borders included.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	return windowHeight - HeaderHeight - opts.PlayerBarHeight - opts.FooterHeight
}

// ListHeight returns the number of rows inside the listing border. It is
// never below one.
func ListHeight(windowHeight int, opts ContentOpts) int {
	return max(ContentHeight(windowHeight, opts)-BorderHeight, 1)
}

// ShowLyrics reports whether the lyrics panel fits beside the listing.
func ShowLyrics(windowWidth int) bool {
	return windowWidth >= MinLyricsWidth
}

// ListWidth returns the listing panel width. With lyrics shown the listing
// takes three fifths of the width.
func ListWidth(windowWidth int, lyricsVisible bool) int {
	if lyricsVisible {
		return windowWidth * 3 / 5
	}
	return windowWidth
}

// LyricsWidth returns the width left for the lyrics panel.
func LyricsWidth(windowWidth int, lyricsVisible bool) int {
	if !lyricsVisible {
		return 0
	}
	return windowWidth - ListWidth(windowWidth, true)
}
