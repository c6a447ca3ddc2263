package playlist

import (
	"fmt"
	"strings"
)

// Scope selects which siblings of an item form its playlist.
type Scope string

const (
	// ScopeAll takes every item of the kind.
	ScopeAll Scope = "all"
	// ScopeShare takes items with the same share label.
	ScopeShare Scope = "share"
	// ScopeFolder takes items in the same directory, sorted by name.
	ScopeFolder Scope = "folder"
)

// ParseScope parses a scope name. Unknown names yield ScopeAll and an error.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeAll:
		return ScopeAll, nil
	case ScopeShare:
		return ScopeShare, nil
	case ScopeFolder:
		return ScopeFolder, nil
	}
	return ScopeAll, fmt.Errorf("unknown playlist scope %q", s)
}
