package layout

import "testing"

func TestContentHeight(t *testing.T) {
	tests := []struct {
		name         string
		windowHeight int
		opts         ContentOpts
		want         int
	}{
		{"header only", 40, ContentOpts{}, 39},
		{"with player bar", 40, ContentOpts{PlayerBarHeight: 3}, 36},
		{"with footer", 40, ContentOpts{FooterHeight: 2}, 37},
		{"all components", 40, ContentOpts{PlayerBarHeight: 4, FooterHeight: 2}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentHeight(tt.windowHeight, tt.opts); got != tt.want {
				t.Errorf("ContentHeight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestListHeight(t *testing.T) {
	if got := ListHeight(40, ContentOpts{PlayerBarHeight: 3, FooterHeight: 1}); got != 33 {
		t.Errorf("ListHeight() = %d, want 33", got)
	}
	if got := ListHeight(4, ContentOpts{PlayerBarHeight: 3, FooterHeight: 1}); got != 1 {
		t.Errorf("ListHeight() on a tiny window = %d, want 1", got)
	}
}

func TestWidths(t *testing.T) {
	tests := []struct {
		width      int
		lyrics     bool
		wantList   int
		wantLyrics int
	}{
		{100, true, 60, 40},
		{100, false, 100, 0},
		{61, true, 36, 25},
	}
	for _, tt := range tests {
		if got := ListWidth(tt.width, tt.lyrics); got != tt.wantList {
			t.Errorf("ListWidth(%d, %v) = %d, want %d", tt.width, tt.lyrics, got, tt.wantList)
		}
		if got := LyricsWidth(tt.width, tt.lyrics); got != tt.wantLyrics {
			t.Errorf("LyricsWidth(%d, %v) = %d, want %d", tt.width, tt.lyrics, got, tt.wantLyrics)
		}
	}
}

func TestShowLyrics(t *testing.T) {
	if ShowLyrics(59) {
		t.Error("ShowLyrics(59) = true, want false")
	}
	if !ShowLyrics(60) {
		t.Error("ShowLyrics(60) = false, want true")
	}
}
