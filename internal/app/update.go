package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lanshelf/internal/errmsg"
	"github.com/llehouerou/lanshelf/internal/playback"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		m.clampCursors()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case StderrMsg:
		m.log.WithField("source", "stderr").Warn(string(msg))
		m.notice = string(msg)
		return m, WatchStderr()
	case ListingMessage:
		return m.handleListing(msg)
	case PlaybackMessage:
		return m.handlePlayback(msg)
	}
	return m, nil
}

func (m Model) handleListing(msg ListingMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ListingMsg:
		if msg.Err != nil {
			m.notice = errmsg.Format(errmsg.OpListingLoad, msg.Err)
			if msg.Initial {
				return m, m.loadFull(false)
			}
			m.status.Scanning = false
			return m, nil
		}
		if msg.Changed || msg.Initial {
			m.applyListing(msg.Listing)
		}
		li := msg.Listing
		if li == nil {
			return m, nil
		}
		if li.Limited {
			return m, m.loadFull(false)
		}
		m.notice = ""
		if li.Scanning && m.pollCh == nil {
			m.pollCh = startPoll(m.ctx, m.Listings)
			return m, waitPoll(m.pollCh)
		}
	case ListingUpdateMsg:
		m.applyListing(msg.Listing)
		return m, waitPoll(m.pollCh)
	case PollDoneMsg:
		m.pollCh = nil
		m.status.Scanning = false
	}
	return m, nil
}

func (m Model) handlePlayback(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.view = m.Playback.Snapshot()
		return m, TickCmd()
	case PlaybackEventMsg:
		m.view = m.Playback.Snapshot()
		if e, ok := msg.Event.(playback.SelectionChange); ok && e.Item.Kind == m.Kind {
			m.follow(e.Item)
		}
		return m, m.watchPlayback()
	case PlaybackClosedMsg:
		m.sub = nil
	}
	return m, nil
}

func (m *Model) clampCursors() {
	h := m.listHeight()
	for k, c := range m.cursors {
		c.ClampToBounds(len(m.listing.ItemsOf(k)), h)
		m.cursors[k] = c
	}
}
