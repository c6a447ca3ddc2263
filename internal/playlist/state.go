package playlist

import (
	"slices"

	"github.com/llehouerou/lanshelf/internal/media"
)

// State is the active playlist: an ordered list of items of one kind and
// the index of the current one. Index is -1 exactly when the list is empty.
type State struct {
	kind    media.Kind
	items   []media.Item
	index   int
	shuffle bool
	loop    bool
}

// New creates a playlist of items with index clamped into range.
func New(kind media.Kind, items []media.Item, index int) State {
	s := State{kind: kind, items: slices.Clone(items)}
	s.index = clampIndex(index, len(s.items))
	return s
}

func clampIndex(index, n int) int {
	if n == 0 {
		return -1
	}
	return min(max(index, 0), n-1)
}

// Kind returns the kind of the items, KindNone for an empty playlist.
func (s *State) Kind() media.Kind {
	return s.kind
}

// Items returns a copy of the items in playback order.
func (s *State) Items() []media.Item {
	return slices.Clone(s.items)
}

// Item returns the item at index i.
func (s *State) Item(i int) (media.Item, bool) {
	if i < 0 || i >= len(s.items) {
		return media.Item{}, false
	}
	return s.items[i], true
}

// Len returns the number of items.
func (s *State) Len() int {
	return len(s.items)
}

// Empty reports whether the playlist has no items.
func (s *State) Empty() bool {
	return len(s.items) == 0
}

// Index returns the current index, -1 if empty.
func (s *State) Index() int {
	if len(s.items) == 0 {
		return -1
	}
	return s.index
}

// Current returns the current item.
func (s *State) Current() (media.Item, bool) {
	return s.Item(s.Index())
}

// HasNext reports whether an item follows the current one.
func (s *State) HasNext() bool {
	return s.index >= 0 && s.index < len(s.items)-1
}

// HasPrevious reports whether an item precedes the current one.
func (s *State) HasPrevious() bool {
	return s.index > 0
}

// Next moves to the following item without wrapping.
func (s *State) Next() (media.Item, bool) {
	if !s.HasNext() {
		return media.Item{}, false
	}
	s.index++
	return s.Current()
}

// Previous moves to the preceding item without wrapping.
func (s *State) Previous() (media.Item, bool) {
	if !s.HasPrevious() {
		return media.Item{}, false
	}
	s.index--
	return s.Current()
}

// Advance moves to the item that plays after the current one ends: the
// next item, or the first one when the end is reached and loop is on.
func (s *State) Advance() (media.Item, bool) {
	if s.HasNext() {
		return s.Next()
	}
	if s.loop && len(s.items) > 0 {
		s.index = 0
		return s.Current()
	}
	return media.Item{}, false
}

// JumpTo sets the current index, clamped into range.
func (s *State) JumpTo(index int) (media.Item, bool) {
	s.index = clampIndex(index, len(s.items))
	return s.Current()
}

// IndexOf returns the position of the item with id, or -1.
func (s *State) IndexOf(id string) int {
	return slices.IndexFunc(s.items, func(it media.Item) bool { return it.ID == id })
}

// Shuffle reports whether the playlist was built shuffled.
func (s *State) Shuffle() bool {
	return s.shuffle
}

// SetShuffle records the shuffle flag. It does not reorder the items.
func (s *State) SetShuffle(on bool) {
	s.shuffle = on
}

// Loop reports whether playback restarts at the first item after the last.
func (s *State) Loop() bool {
	return s.loop
}

// SetLoop sets the loop flag.
func (s *State) SetLoop(on bool) {
	s.loop = on
}
