package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/stretchr/testify/assert"
)

func TestAll_NoDuplicateKeys(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range All {
		assert.NotEmpty(t, b.Keys, "action %s has no keys", b.Action)
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "quit"},
		{ActionPlayPause, []string{" "}, "play/pause"},
		{ActionNext, []string{"n", "n"}, "next"},
	})

	assert.Equal(t, ActionQuit, r.Resolve("ctrl+c"))
	assert.Equal(t, ActionPlayPause, r.Resolve(" "))
	assert.Equal(t, Action(""), r.Resolve("x"))
	assert.Equal(t, []string{"q", "ctrl+c"}, r.KeysFor(ActionQuit))
	assert.Equal(t, []string{"n"}, r.KeysFor(ActionNext))
}

func TestHelpKeys(t *testing.T) {
	h := NewHelpKeys(All, Short)

	assert.Len(t, h.ShortHelp(), len(Short))
	total := 0
	for _, col := range h.FullHelp() {
		assert.LessOrEqual(t, len(col), 6)
		total += len(col)
	}
	assert.Equal(t, len(All), total)

	out := help.New().View(h)
	assert.Contains(t, out, "space")
	assert.Contains(t, out, "quit")
}
