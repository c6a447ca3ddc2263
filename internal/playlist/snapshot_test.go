package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lanshelf/internal/media"
)

func TestSnapshot_EncodeDecode(t *testing.T) {
	s := New(media.KindAudio, threeItems(), 1)

	snap := s.Snapshot()
	assert.Equal(t, Snapshot{Kind: media.KindAudio, Index: 1, IDs: []string{"a", "b", "c"}}, snap)

	decoded, err := DecodeSnapshot(snap.Encode())
	require.NoError(t, err)
	assert.Equal(t, snap, decoded)
	assert.Contains(t, snap.Encode(), `"kind":"audio"`)

	_, err = DecodeSnapshot("not json")
	assert.Error(t, err)
}

func TestRestore(t *testing.T) {
	pool := []media.Item{{ID: "a"}, {ID: "c"}, {ID: "d"}}

	tests := []struct {
		name      string
		snap      Snapshot
		wantIDs   []string
		wantIndex int
		wantOK    bool
	}{
		{
			name:      "indexed item survives",
			snap:      Snapshot{Kind: media.KindAudio, Index: 2, IDs: []string{"a", "b", "c", "d"}},
			wantIDs:   []string{"a", "c", "d"},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name:      "indexed item dropped moves to next survivor",
			snap:      Snapshot{Kind: media.KindAudio, Index: 1, IDs: []string{"a", "b", "c"}},
			wantIDs:   []string{"a", "c"},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name:      "dropped at tail moves to previous survivor",
			snap:      Snapshot{Kind: media.KindAudio, Index: 2, IDs: []string{"a", "c", "x"}},
			wantIDs:   []string{"a", "c"},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name:   "nothing survives",
			snap:   Snapshot{Kind: media.KindAudio, Index: 0, IDs: []string{"x", "y"}},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Restore(tt.snap, pool)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantIDs, ids(s.Items()))
			assert.Equal(t, tt.wantIndex, s.Index())
			assert.Equal(t, media.KindAudio, s.Kind())
		})
	}
}
