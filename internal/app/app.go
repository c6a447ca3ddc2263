package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/lanshelf/internal/config"
	"github.com/llehouerou/lanshelf/internal/keymap"
	"github.com/llehouerou/lanshelf/internal/media"
	"github.com/llehouerou/lanshelf/internal/playback"
	"github.com/llehouerou/lanshelf/internal/ui/cursor"
	"github.com/llehouerou/lanshelf/internal/ui/headerbar"
	"github.com/llehouerou/lanshelf/internal/ui/layout"
)

// ListingSource loads the host listing.
type ListingSource interface {
	Initial(ctx context.Context) (*media.Listing, error)
	Full(ctx context.Context, refresh bool) (*media.Listing, bool, error)
	Poll(ctx context.Context, onUpdate func(*media.Listing)) error
}

// Model is the root bubbletea model.
type Model struct {
	Playback *playback.Controller
	Listings ListingSource
	Config   *config.Config

	Kind   media.Kind
	Width  int
	Height int

	ctx      context.Context
	sub      *playback.Subscription
	keys     *keymap.Resolver
	help     help.Model
	helpKeys keymap.HelpKeys
	log      *logrus.Entry

	cursors       map[media.Kind]cursor.Cursor
	listing       *media.Listing
	view          playback.View
	status        headerbar.Status
	pollCh        <-chan *media.Listing
	resumePending bool
	showLyrics    bool
	notice        string
}

// New creates the model. ctx bounds every background load.
func New(ctx context.Context, cfg *config.Config, ctrl *playback.Controller, listings ListingSource) Model {
	if cfg == nil {
		cfg = &config.Config{}
	}
	m := Model{
		Playback:      ctrl,
		Listings:      listings,
		Config:        cfg,
		Kind:          media.Kinds[0],
		ctx:           ctx,
		sub:           ctrl.Subscribe(),
		keys:          keymap.NewResolver(keymap.All),
		help:          help.New(),
		helpKeys:      keymap.NewHelpKeys(keymap.All, keymap.Short),
		log:           logrus.WithField("component", "app"),
		cursors:       make(map[media.Kind]cursor.Cursor, len(media.Kinds)),
		status:        headerbar.Status{Limited: true},
		resumePending: cfg.ResumeEnabled(),
		showLyrics:    true,
	}
	for _, k := range media.Kinds {
		m.cursors[k] = cursor.New(layout.ScrollMargin)
	}
	m.view = ctrl.Snapshot()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadInitial(),
		m.watchPlayback(),
		TickCmd(),
		WatchStderr(),
	)
}

// items returns the listing entries of the active tab.
func (m Model) items() []media.Item {
	return m.listing.ItemsOf(m.Kind)
}

// applyListing installs li and, while a resume is pending, tries to resume
// the last selection against it.
func (m *Model) applyListing(li *media.Listing) {
	if li == nil {
		return
	}
	m.listing = li
	m.status = headerbar.Status{Scanning: li.Scanning, Limited: li.Limited}
	m.Playback.SetListing(li)

	h := m.listHeight()
	for _, k := range media.Kinds {
		c := m.cursors[k]
		c.ClampToBounds(len(li.ItemsOf(k)), h)
		m.cursors[k] = c
	}

	if m.resumePending && m.Playback.HasResumeCandidate() {
		m.resumePending = false
		if m.Playback.ResumeLast(m.ctx) {
			m.view = m.Playback.Snapshot()
			if m.view.Item != nil {
				m.Kind = m.view.Item.Kind
				m.follow(*m.view.Item)
			}
		}
	}
	if !li.Limited {
		m.resumePending = false
	}
}

// follow moves the cursor of it's tab onto it.
func (m *Model) follow(it media.Item) {
	items := m.listing.ItemsOf(it.Kind)
	for i := range items {
		if items[i].ID == it.ID {
			c := m.cursors[it.Kind]
			c.Jump(i, len(items), m.listHeight())
			m.cursors[it.Kind] = c
			return
		}
	}
}
