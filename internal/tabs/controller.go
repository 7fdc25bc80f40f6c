package tabs

import (
	"context"
	"log/slog"
	"sync"

	"roomassistant/internal/catalog"
	"roomassistant/internal/gateway"
	"roomassistant/internal/genres"
	"roomassistant/internal/logging"
	"roomassistant/internal/session"
)

// Tab identifies one of the mutually exclusive data views.
type Tab string

const (
	TabRandom  Tab = "random"
	TabRanking Tab = "ranking"
	TabSearch  Tab = "search"
)

// Renderer is the presentation layer the controller draws through.
type Renderer interface {
	// Clear empties the content region when a new fetch is issued.
	Clear(tab Tab)
	// RenderBundle draws a completed fetch. An empty bundle draws zero
	// sections, not an error.
	RenderBundle(tab Tab, bundle catalog.Bundle)
	// RenderError draws a single inline message in place of content.
	RenderError(tab Tab, message string)
}

// Selection supplies the presentation layer's current ranking inputs. They
// are read at fetch time, not cached by the controller.
type Selection interface {
	RankingSelection() (genreID, genreName string, filter catalog.PriceFilter)
}

// Controller is the state machine selecting the active view and owning the
// lifecycle of its in-flight fetch.
//
// The transport has no cancellation primitive, so superseded fetches are
// not stopped; each fetch is tagged with a monotonically increasing
// sequence number and its result is discarded on arrival when a newer
// fetch has been issued since. The guarantee is "last issued wins", not
// "last completed wins".
type Controller struct {
	svc      *catalog.Service
	store    *session.Store
	genres   *genres.Cache
	sel      Selection
	renderer Renderer
	logger   *slog.Logger

	mu  sync.Mutex
	tab Tab
	seq uint64
}

// NewController wires a controller. The session store is consulted at fetch
// time for price filters, never cached.
func NewController(svc *catalog.Service, store *session.Store, cache *genres.Cache, sel Selection, renderer Renderer, logger *slog.Logger) *Controller {
	return &Controller{
		svc:      svc,
		store:    store,
		genres:   cache,
		sel:      sel,
		renderer: renderer,
		logger:   logging.NewComponentLogger(logger, "tabs"),
	}
}

// Active returns the currently selected tab.
func (c *Controller) Active() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// Start issues the initial fetch on dashboard entry. Premium users enter
// the random feed with tab chrome; Free users get the same combined feed
// with no tab chrome. The chrome difference is the renderer's concern, so
// both paths issue the dashboard fetch.
func (c *Controller) Start(ctx context.Context) <-chan struct{} {
	return c.SwitchTo(ctx, TabRandom)
}

// SwitchTo selects a tab, clears the content region, and issues the fetch
// appropriate to the new view. The returned channel closes once the fetch
// has been applied or discarded; callers that only care about the final
// rendered state may ignore it.
//
// Switching to Search issues no fetch by itself; search runs only on an
// explicit submission via SubmitSearch.
func (c *Controller) SwitchTo(ctx context.Context, tab Tab) <-chan struct{} {
	seq := c.begin(tab)

	done := make(chan struct{})
	if tab == TabSearch {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		switch tab {
		case TabRanking:
			c.apply(seq, tab)(c.fetchRanking(ctx))
		default:
			c.apply(seq, tab)(c.fetchDashboard(ctx))
		}
	}()
	return done
}

// SubmitSearch runs one search submission within the Search tab. A
// submission supersedes any in-flight fetch, like a tab switch does.
func (c *Controller) SubmitSearch(ctx context.Context, query catalog.Query) <-chan struct{} {
	seq := c.begin(TabSearch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.apply(seq, TabSearch)(c.svc.Search(ctx, query))
	}()
	return done
}

// begin records the new selection, invalidates older fetches, and clears
// the content region.
func (c *Controller) begin(tab Tab) uint64 {
	c.mu.Lock()
	c.tab = tab
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.renderer.Clear(tab)
	c.logger.Debug("fetch issued",
		logging.String(logging.FieldTab, string(tab)),
		logging.Uint64("seq", seq))
	return seq
}

// apply renders a completed fetch unless a newer one has been issued since.
func (c *Controller) apply(seq uint64, tab Tab) func(catalog.Bundle, error) {
	return func(bundle catalog.Bundle, err error) {
		c.mu.Lock()
		stale := seq != c.seq
		c.mu.Unlock()

		if stale {
			c.logger.Debug("stale result discarded",
				logging.String(logging.FieldTab, string(tab)),
				logging.Uint64("seq", seq))
			return
		}
		if err != nil {
			c.renderer.RenderError(tab, gateway.UserMessage(err))
			return
		}
		c.renderer.RenderBundle(tab, bundle)
	}
}

func (c *Controller) fetchDashboard(ctx context.Context) (catalog.Bundle, error) {
	return c.svc.Dashboard(ctx, c.currentFilter())
}

func (c *Controller) fetchRanking(ctx context.Context) (catalog.Bundle, error) {
	if _, err := c.genres.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	genreID, genreName, filter := c.sel.RankingSelection()
	return c.svc.Ranking(ctx, genreID, genreName, filter)
}

// currentFilter re-reads the session record so a settings save that landed
// after the last switch still applies to this fetch.
func (c *Controller) currentFilter() catalog.PriceFilter {
	sess, ok, err := c.store.Load()
	if err != nil || !ok {
		return catalog.PriceFilter{}
	}
	return catalog.PriceFilter{Min: sess.PriceMin, Max: sess.PriceMax}
}
