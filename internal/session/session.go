// Package session holds the per-process selection state: the selection
// token, the current item and the active playlist.
//
// State is not safe for concurrent use; the playback controller serializes
// access to it.
package session

import (
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/playlist"
)

// Token identifies one selection. Asynchronous results carry the token
// captured when they were started and are discarded when it is no longer
// current.
type Token uint64

// State is the session state. The zero value is ready to use.
type State struct {
	token    Token
	current  *media.Item
	playlist playlist.State
}

// Select makes it the current item and returns the new token.
// The token increases by exactly one per call.
func (s *State) Select(it media.Item) Token {
	s.token++
	s.current = &it
	return s.token
}

// Token returns the current selection token.
func (s *State) Token() Token {
	return s.token
}

// IsCurrent reports whether tok is still the current token.
func (s *State) IsCurrent(tok Token) bool {
	return tok == s.token
}

// Current returns the current item.
func (s *State) Current() (media.Item, bool) {
	if s.current == nil {
		return media.Item{}, false
	}
	return *s.current, true
}

// Playlist returns the active playlist.
func (s *State) Playlist() *playlist.State {
	return &s.playlist
}

// SetPlaylist replaces the active playlist.
func (s *State) SetPlaylist(p playlist.State) {
	s.playlist = p
}

// Clear drops the current item and bumps the token, so pending results for
// the previous item are discarded.
func (s *State) Clear() Token {
	s.token++
	s.current = nil
	return s.token
}
