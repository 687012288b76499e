// Package mapview implements the map session: it pipelines the territory
// fetch into per-district boundary resolution, owns the resulting list of
// renderable regions, and manages marker selection, the drill-down panel,
// and the dark/light theme flag.
package mapview

import (
	"context"
	"sync"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
	"github.com/rxprasetya/sebaran-penjualan/pkg/geo"
)

// State is the session's lifecycle phase.
type State string

const (
	StateIdle               State = "idle"
	StateLoadingTerritories State = "loading_territories"
	StateLoadingBoundaries  State = "loading_boundaries"
	StateReady              State = "ready"
	StatePanelOpen          State = "panel_open"
	StateError              State = "error"
)

// TerritorySource produces the territory records to render.
type TerritorySource interface {
	FetchTerritories(ctx context.Context) ([]territory.TerritoryRecord, error)
}

// BoundarySource resolves one district code into a ring and a marker point.
type BoundarySource interface {
	Load(ctx context.Context, districtCode string) (geo.Ring, geo.LatLng, error)
}

// ThemeSource exposes the shared dark/light flag: a synchronous current
// read for late-binding plus asynchronous change notification.
type ThemeSource interface {
	Current(ctx context.Context) (string, error)
	Watch(ctx context.Context, onChange func(theme string)) error
}

// defaultConcurrency bounds simultaneous boundary loads when the caller
// does not choose a bound.
const defaultConcurrency = 8

// Session drives one map view.  All exported methods are safe for
// concurrent use; the region list is owned exclusively by the session and
// rebuilt wholesale on every refresh.
type Session struct {
	territories TerritorySource
	boundaries  BoundarySource
	concurrency int
	logger      logging.Logger

	mu           sync.Mutex
	state        State
	regions      []territory.RegionPolygon
	selected     int
	panelVisible bool
	dark         bool
	loadErr      error
	generation   uint64
	closed       bool

	watchCancel context.CancelFunc
}

// Option configures a Session.
type Option func(*Session)

// WithConcurrency bounds how many boundary loads run at once.
func WithConcurrency(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession builds an idle session.  Call Start to load the map.
func NewSession(territories TerritorySource, boundaries BoundarySource, opts ...Option) *Session {
	s := &Session{
		territories: territories,
		boundaries:  boundaries,
		concurrency: defaultConcurrency,
		logger:      logging.NewNopLogger(),
		state:       StateIdle,
		selected:    -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error that moved the session into StateError, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Regions returns a copy of the current renderable region list.
func (s *Session) Regions() []territory.RegionPolygon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]territory.RegionPolygon, len(s.regions))
	copy(out, s.regions)
	return out
}

// Dark reports the current theme flag.
func (s *Session) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// BindTheme reads the current theme synchronously and subscribes to future
// changes.  The subscription lives until Close.
func (s *Session) BindTheme(ctx context.Context, themes ThemeSource) error {
	current, err := themes.Current(ctx)
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return errors.New(errors.ErrCodeSessionClosed, "map session is closed")
	}
	s.dark = current == "dark"
	prev := s.watchCancel
	s.watchCancel = cancel
	s.mu.Unlock()

	// Rebinding replaces the subscription; the superseded watch must not
	// outlive it.
	if prev != nil {
		prev()
	}

	if err := themes.Watch(watchCtx, func(theme string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.dark = theme == "dark"
	}); err != nil {
		cancel()
		return err
	}
	return nil
}

// Start performs the initial load.  It is identical to Refresh and exists
// for call-site clarity on mount.
func (s *Session) Start(ctx context.Context) {
	s.Refresh(ctx)
}

// Refresh re-runs the whole pipeline: fetch territories, resolve each
// record's boundary, and replace the region list.  A territory fetch
// failure is fatal to the attempt and moves the session to StateError with
// no boundary fetches issued.  Individual boundary failures only drop their
// own record.  Refresh returns when the session has settled in StateReady
// or StateError; results from a superseded refresh are discarded.
func (s *Session) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.state = StateLoadingTerritories
	s.regions = nil
	s.selected = -1
	s.panelVisible = false
	s.loadErr = nil
	s.mu.Unlock()

	records, err := s.territories.FetchTerritories(ctx)
	if err != nil {
		s.settle(gen, func() {
			s.state = StateError
			s.loadErr = err
		})
		s.logger.Error("Territory fetch failed", logging.Err(err))
		return
	}

	if !s.settle(gen, func() {
		s.state = StateLoadingBoundaries
		s.regions = make([]territory.RegionPolygon, 0, len(records))
	}) {
		return
	}

	s.resolveBoundaries(ctx, gen, records)

	s.settle(gen, func() {
		s.state = StateReady
	})
}

// resolveBoundaries loads every record's boundary with bounded concurrency.
// Completion order is not input order; each region appends as its fetch
// settles.
func (s *Session) resolveBoundaries(ctx context.Context, gen uint64, records []territory.TerritoryRecord) {
	resolveRegions(ctx, s.boundaries, s.concurrency, s.logger, records, func(region territory.RegionPolygon) {
		s.settle(gen, func() {
			s.regions = append(s.regions, region)
		})
	})
}

// settle applies fn under the lock only when the session is still on
// generation gen and not closed.  Late results from a superseded refresh or
// a torn-down session are no-ops.
func (s *Session) settle(gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.generation != gen {
		return false
	}
	fn()
	return true
}

// SelectMarker opens the drill-down panel for the region at index.
func (s *Session) SelectMarker(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady && s.state != StatePanelOpen {
		return errors.New(errors.ErrCodeInternal, "no regions to select in current state")
	}
	if index < 0 || index >= len(s.regions) {
		return errors.InvalidParam("region index out of range")
	}
	s.selected = index
	s.panelVisible = true
	s.state = StatePanelOpen
	return nil
}

// ClosePanel hides the panel.  The selected-region pointer is retained;
// only visibility toggles.
func (s *Session) ClosePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePanelOpen {
		return
	}
	s.panelVisible = false
	s.state = StateReady
}

// Close tears the session down.  In-flight boundary results arriving after
// Close are discarded without touching session state.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.generation++
	cancel := s.watchCancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
