package media

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"unpadded", EncodeID("/music/a.mp3"), "/music/a.mp3"},
		{"standard alphabet", "L211c2ljL2EubXAz", "/music/a.mp3"},
		{"padding tolerated", "L20=", "/m"},
		{"unicode", EncodeID("/影片/第1集.mp4"), "/影片/第1集.mp4"},
		{"garbage", "!!!", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeID(tt.id))
		})
	}
}

func TestDirOf(t *testing.T) {
	assert.Equal(t, "/a/b", DirOf("/a/b/c.mp4"))
	assert.Equal(t, `C:\media\show`, DirOf(`C:\media\show\e1.mkv`))
	assert.Equal(t, `C:\media/x`, DirOf(`C:\media/x/e1.mkv`))
	assert.Equal(t, "", DirOf("file.mp4"))
	assert.Equal(t, "", DirOf(""))
}

func TestItemExtensionAndTitle(t *testing.T) {
	it := Item{Name: "Song.FLAC"}
	assert.Equal(t, ".flac", it.Extension())
	assert.Equal(t, "Song", it.Title())

	it = Item{Name: "clip", Ext: "MP4"}
	assert.Equal(t, ".mp4", it.Extension())
	assert.Equal(t, "clip", it.Title())
}

func TestItemJSONKind(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"id":"x","name":"a.mp3","kind":"audio","modTime":12}`), &it)
	require.NoError(t, err)
	assert.Equal(t, KindAudio, it.Kind)
	assert.Equal(t, int64(12), it.ModTime)

	b, err := json.Marshal(it)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":"audio"`)

	err = json.Unmarshal([]byte(`{"kind":"hologram"}`), &it)
	assert.Error(t, err)
}

func TestListingFindAndTotal(t *testing.T) {
	l := &Listing{
		Audios:      []Item{{ID: "a1"}, {ID: "a2"}},
		AudiosTotal: 10,
	}
	it, ok := l.Find(KindAudio, "a2")
	assert.True(t, ok)
	assert.Equal(t, "a2", it.ID)

	_, ok = l.Find(KindVideo, "a2")
	assert.False(t, ok)

	assert.Equal(t, 10, l.Total(KindAudio))
	assert.Equal(t, 0, l.Total(KindVideo))

	var nilListing *Listing
	assert.Nil(t, nilListing.ItemsOf(KindAudio))
}
