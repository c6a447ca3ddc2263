package lyrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/lanshelf/internal/lyrics"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name                  string
		total, active, height int
		wantStart, wantEnd    int
	}{
		{"fits", 3, 1, 5, 0, 3},
		{"centred", 20, 10, 5, 8, 13},
		{"start of track", 20, 0, 5, 0, 5},
		{"before first line", 20, -1, 5, 0, 5},
		{"end of track", 20, 19, 5, 15, 20},
		{"empty", 0, 0, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.total, tt.active, tt.height)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestRender(t *testing.T) {
	l := lyrics.ParseString("[00:01.00]first\n[00:02.00]second\n[00:03.00]third\n")

	out := Render(l, 1, 20, 3)

	rows := strings.Split(out, "\n")
	assert.Len(t, rows, 3)
	assert.Contains(t, rows[0], "first")
	assert.Contains(t, rows[1], "second")
	assert.Contains(t, rows[2], "third")
}

func TestRender_NoLyrics(t *testing.T) {
	out := Render(nil, -1, 20, 3)

	rows := strings.Split(out, "\n")
	assert.Len(t, rows, 3)
	assert.Contains(t, rows[1], emptyText)
}
