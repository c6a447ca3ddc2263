package playlist

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/llehouerou/lanshelf/internal/media"
)

// Snapshot is the persisted form of a playlist: its kind, index and the
// ordered item ids.
type Snapshot struct {
	Kind  media.Kind `json:"kind"`
	Index int        `json:"index"`
	IDs   []string   `json:"ids"`
}

// Snapshot returns the persisted form of the playlist.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Kind:  s.kind,
		Index: s.Index(),
		IDs:   lo.Map(s.items, func(it media.Item, _ int) string { return it.ID }),
	}
}

// Encode serializes the snapshot.
func (s Snapshot) Encode() string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}

// DecodeSnapshot parses a serialized snapshot.
func DecodeSnapshot(data string) (Snapshot, error) {
	var s Snapshot
	err := json.Unmarshal([]byte(data), &s)
	return s, err
}

// Restore rebuilds a playlist from a snapshot, resolving ids against pool.
// Ids missing from pool are skipped. The index follows the item it pointed
// at when that item still exists, else the first survivor after it, else
// the last survivor before it. It returns false when no item survives.
func Restore(snap Snapshot, pool []media.Item) (State, bool) {
	byID := lo.KeyBy(pool, func(it media.Item) string { return it.ID })

	items := make([]media.Item, 0, len(snap.IDs))
	positions := make([]int, len(snap.IDs))
	for i, id := range snap.IDs {
		it, ok := byID[id]
		if !ok {
			positions[i] = -1
			continue
		}
		positions[i] = len(items)
		items = append(items, it)
	}
	if len(items) == 0 {
		return State{}, false
	}

	return New(snap.Kind, items, survivorIndex(positions, snap.Index)), true
}

func survivorIndex(positions []int, index int) int {
	start := min(max(index, 0), len(positions)-1)
	for i := start; i < len(positions); i++ {
		if positions[i] >= 0 {
			return positions[i]
		}
	}
	for i := start - 1; i >= 0; i-- {
		if positions[i] >= 0 {
			return positions[i]
		}
	}
	return 0
}
