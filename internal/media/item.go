package media

import (
	"encoding/base64"
	"path"
	"strings"
)

// Subtitle is a text track attached to a video item.
type Subtitle struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Lang    string `json:"lang"`
	Src     string `json:"src"`
	Default bool   `json:"default"`
}

// Item is a single entry in the host listing.
// ID is the base64url encoding of the item's absolute path on the host.
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Ext        string     `json:"ext"`
	Kind       Kind       `json:"kind"`
	ShareLabel string     `json:"shareLabel"`
	Size       int64      `json:"size"`
	ModTime    int64      `json:"modTime"`
	Subtitles  []Subtitle `json:"subtitles,omitempty"`
	CoverID    string     `json:"coverId,omitempty"`
	LyricsID   string     `json:"lyricsId,omitempty"`
}

// DecodeID returns the absolute path encoded in id.
// Padding is optional. An id that does not decode yields "".
func DecodeID(id string) string {
	if id == "" {
		return ""
	}
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(id, "="))
	if err != nil {
		return ""
	}
	return string(b)
}

// EncodeID encodes an absolute path the way the host does.
func EncodeID(absPath string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(absPath))
}

// DirOf returns everything before the last path separator of p.
// Both '/' and '\' count as separators. A path without separator yields "".
func DirOf(p string) string {
	i := strings.LastIndexAny(p, `/\`)
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Path returns the decoded absolute path of the item.
func (it Item) Path() string {
	return DecodeID(it.ID)
}

// Dir returns the directory containing the item.
func (it Item) Dir() string {
	return DirOf(it.Path())
}

// Extension returns the lowercased extension with its leading dot.
// The host-supplied Ext wins; otherwise it is derived from the name.
func (it Item) Extension() string {
	ext := it.Ext
	if ext == "" {
		ext = path.Ext(it.Name)
	}
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Title returns the name without its extension.
func (it Item) Title() string {
	name := it.Name
	if ext := path.Ext(name); ext != "" && len(ext) < len(name) {
		return name[:len(name)-len(ext)]
	}
	return name
}
