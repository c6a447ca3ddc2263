package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lanshelf/internal/keymap"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/playback"
)

const (
	seekStep     = 5.0
	seekStepLong = 30.0
	volumeStep   = 0.05
)

var tabActions = map[keymap.Action]media.Kind{
	keymap.ActionViewVideos: media.KindVideo,
	keymap.ActionViewAudios: media.KindAudio,
	keymap.ActionViewImages: media.KindImage,
	keymap.ActionViewOthers: media.KindOther,
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	c := m.cursors[m.Kind]
	if c.HandleKey(key, len(m.items()), m.listHeight()) {
		m.cursors[m.Kind] = c
		return m, nil
	}

	action := m.keys.Resolve(key)
	if k, ok := tabActions[action]; ok {
		m.Kind = k
		return m, nil
	}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case keymap.ActionRefresh:
		m.status.Scanning = true
		return m, m.loadFull(true)
	case keymap.ActionNextTab:
		m.Kind = nextKind(m.Kind)
	case keymap.ActionSelect:
		m.selectAtCursor()
	case keymap.ActionLocate:
		if it := m.view.Item; it != nil {
			m.Kind = it.Kind
			m.follow(*it)
		}
	case keymap.ActionPlayPause:
		m.Playback.TogglePause()
	case keymap.ActionNext:
		m.Playback.Next()
	case keymap.ActionPrevious:
		m.Playback.Previous()
	case keymap.ActionSeekForward:
		m.Playback.SeekBy(seekStep)
	case keymap.ActionSeekBack:
		m.Playback.SeekBy(-seekStep)
	case keymap.ActionSeekForwardLong:
		m.Playback.SeekBy(seekStepLong)
	case keymap.ActionSeekBackLong:
		m.Playback.SeekBy(-seekStepLong)
	case keymap.ActionVolumeUp:
		m.Playback.SetVolume(min(m.view.Volume+volumeStep, 1))
	case keymap.ActionVolumeDown:
		m.Playback.SetVolume(max(m.view.Volume-volumeStep, 0))
	case keymap.ActionToggleShuffle:
		m.Playback.SetShuffle(!m.view.Shuffle)
	case keymap.ActionToggleLoop:
		m.Playback.SetLoop(!m.view.Loop)
	case keymap.ActionToggleLyrics:
		m.showLyrics = !m.showLyrics
	case keymap.ActionToggleRemember:
		on := !m.Playback.Remember(m.Kind)
		m.Playback.SetRemember(m.Kind, on)
		m.notice = fmt.Sprintf("Remember %s position: %s", m.Kind, onOff(on))
	default:
		return m, nil
	}
	m.view = m.Playback.Snapshot()
	return m, nil
}

func (m *Model) selectAtCursor() {
	items := m.items()
	pos := m.cursors[m.Kind].Pos()
	if pos >= len(items) {
		return
	}
	m.Playback.Select(items[pos], playback.SelectOptions{
		User:     true,
		Autoplay: m.Config.Kind(m.Kind).AutoplayEnabled(),
	})
}

func nextKind(k media.Kind) media.Kind {
	for i, kind := range media.Kinds {
		if kind == k {
			return media.Kinds[(i+1)%len(media.Kinds)]
		}
	}
	return media.Kinds[0]
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
