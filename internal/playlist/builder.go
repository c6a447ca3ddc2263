package playlist

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/llehouerou/lanshelf/internal/media"
)

// Request describes a playlist build.
type Request struct {
	Listing *media.Listing
	Item    media.Item
	Kind    media.Kind
	Scope   Scope
	Shuffle bool
}

// Result is a built playlist. Index is -1 when Items is empty or when the
// requested item is not among the candidates.
type Result struct {
	Items []media.Item
	Index int
}

// Builder computes playlists from a listing. Building never mutates the
// listing or any session state.
type Builder struct {
	tag language.Tag

	mu  sync.Mutex
	rnd *rand.Rand
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRand sets the random source used for shuffling.
func WithRand(r *rand.Rand) BuilderOption {
	return func(b *Builder) { b.rnd = r }
}

// NewBuilder creates a builder collating folder names for locale.
func NewBuilder(locale string, opts ...BuilderOption) *Builder {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Chinese
	}
	b := &Builder{
		tag: tag,
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // shuffle order is not security sensitive
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the playlist for req.Item under req.Scope.
func (b *Builder) Build(req Request) Result {
	candidates := b.candidates(req)
	if len(candidates) == 0 {
		return Result{Index: -1}
	}

	if req.Shuffle {
		b.shuffle(candidates)
	}

	return Result{Items: candidates, Index: locate(candidates, req.Item)}
}

func (b *Builder) candidates(req Request) []media.Item {
	all := req.Listing.ItemsOf(req.Kind)

	switch req.Scope {
	case ScopeShare:
		return lo.Filter(all, func(it media.Item, _ int) bool {
			return it.ShareLabel == req.Item.ShareLabel
		})
	case ScopeFolder:
		dir := req.Item.Dir()
		items := lo.Filter(all, func(it media.Item, _ int) bool {
			return it.Dir() == dir
		})
		b.sortByName(items)
		return items
	default:
		return slices.Clone(all)
	}
}

// sortByName orders items by locale-aware, case-insensitive name. Ties fall
// back to the exact name and then the id, so the result never depends on
// the listing order.
func (b *Builder) sortByName(items []media.Item) {
	c := collate.New(b.tag, collate.IgnoreCase)
	slices.SortStableFunc(items, func(x, y media.Item) int {
		if r := c.CompareString(x.Name, y.Name); r != 0 {
			return r
		}
		if x.Name != y.Name {
			if x.Name < y.Name {
				return -1
			}
			return 1
		}
		switch {
		case x.ID < y.ID:
			return -1
		case x.ID > y.ID:
			return 1
		}
		return 0
	})
}

// shuffle permutes items in place with Fisher-Yates.
func (b *Builder) shuffle(items []media.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(items) - 1; i > 0; i-- {
		j := b.rnd.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// locate finds it by id, then by decoded path.
func locate(items []media.Item, it media.Item) int {
	if i := slices.IndexFunc(items, func(c media.Item) bool { return c.ID == it.ID }); i >= 0 {
		return i
	}
	p := it.Path()
	if p == "" {
		return -1
	}
	return slices.IndexFunc(items, func(c media.Item) bool { return c.Path() == p })
}
