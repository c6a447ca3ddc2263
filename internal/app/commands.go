package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/stderr"
)

const tickInterval = 250 * time.Millisecond

// TickCmd returns a command that sends TickMsg after tickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForChannel reads one value from ch and converts it with onResult.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		return onResult(v, ok)
	}
}

// WatchStderr waits for the next captured stderr line.
func WatchStderr() tea.Cmd {
	return waitForChannel(stderr.Messages, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg(line)
	})
}

func (m Model) loadInitial() tea.Cmd {
	ctx, src := m.ctx, m.Listings
	return func() tea.Msg {
		li, err := src.Initial(ctx)
		return ListingMsg{Listing: li, Changed: err == nil, Initial: true, Err: err}
	}
}

func (m Model) loadFull(refresh bool) tea.Cmd {
	ctx, src := m.ctx, m.Listings
	return func() tea.Msg {
		li, changed, err := src.Full(ctx, refresh)
		return ListingMsg{Listing: li, Changed: changed, Err: err}
	}
}

// startPoll runs scan polling in the background. Updates arrive on the
// returned channel, which is closed when polling stops.
func startPoll(ctx context.Context, src ListingSource) <-chan *media.Listing {
	ch := make(chan *media.Listing, 1)
	go func() {
		defer close(ch)
		_ = src.Poll(ctx, func(li *media.Listing) {
			select {
			case ch <- li:
			case <-ctx.Done():
			}
		})
	}()
	return ch
}

func waitPoll(ch <-chan *media.Listing) tea.Cmd {
	return waitForChannel(ch, func(li *media.Listing, ok bool) tea.Msg {
		if !ok {
			return PollDoneMsg{}
		}
		return ListingUpdateMsg{Listing: li}
	})
}

// watchPlayback waits for the next controller event.
func (m Model) watchPlayback() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.SelectionChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.StateChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.PlaylistChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.ModeChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.LyricsChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.HintChanged:
			return PlaybackEventMsg{Event: e}
		case e := <-sub.Error:
			return PlaybackEventMsg{Event: e}
		case <-sub.Done:
			return PlaybackClosedMsg{}
		}
	}
}
