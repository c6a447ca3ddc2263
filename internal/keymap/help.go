package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// HelpKeys adapts the bindings to bubbles/help. It implements help.KeyMap.
type HelpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

// NewHelpKeys builds help bindings from all, with short selecting the
// collapsed set.
func NewHelpKeys(all []Binding, short []Action) HelpKeys {
	byAction := make(map[Action]key.Binding, len(all))
	var h HelpKeys
	var column []key.Binding
	for _, b := range all {
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey(b.Keys[0]), b.Description))
		byAction[b.Action] = kb
		column = append(column, kb)
		if len(column) == 6 {
			h.full = append(h.full, column)
			column = nil
		}
	}
	if len(column) > 0 {
		h.full = append(h.full, column)
	}
	for _, a := range short {
		if kb, ok := byAction[a]; ok {
			h.short = append(h.short, kb)
		}
	}
	return h
}

func helpKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (h HelpKeys) ShortHelp() []key.Binding {
	return h.short
}

func (h HelpKeys) FullHelp() [][]key.Binding {
	return h.full
}
