package mapview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
	"github.com/rxprasetya/sebaran-penjualan/internal/testutil"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
	"github.com/rxprasetya/sebaran-penjualan/pkg/geo"
)

type stubTerritories struct {
	records []territory.TerritoryRecord
	err     error
	calls   int
}

func (s *stubTerritories) FetchTerritories(_ context.Context) ([]territory.TerritoryRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type stubBoundaries struct {
	mu      sync.Mutex
	rings   map[string]geo.Ring
	calls   int
	release chan struct{}
}

func (s *stubBoundaries) Load(_ context.Context, districtCode string) (geo.Ring, geo.LatLng, error) {
	s.mu.Lock()
	s.calls++
	ring, ok := s.rings[districtCode]
	release := s.release
	s.mu.Unlock()

	if release != nil {
		<-release
	}
	if !ok {
		return nil, geo.LatLng{}, errors.BoundaryNotFound(districtCode)
	}
	marker, err := geo.SampleInteriorPoint(ring)
	if err != nil {
		return nil, geo.LatLng{}, err
	}
	return ring, marker, nil
}

func (s *stubBoundaries) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func squareRing() geo.Ring {
	return geo.Ring{{Lat: 0, Lng: 0}, {Lat: 2, Lng: 0}, {Lat: 2, Lng: 2}, {Lat: 0, Lng: 2}}
}

func record(name, districtCode string, details ...territory.DetailRow) territory.TerritoryRecord {
	return territory.TerritoryRecord{
		EmployeeName: name,
		ProvinceName: "Jawa Timur",
		CityName:     "Surabaya",
		DistrictID:   10,
		DistrictCode: districtCode,
		DistrictName: "Gubeng",
		Details:      details,
	}
}

func TestSession_InitialState(t *testing.T) {
	s := NewSession(&stubTerritories{}, &stubBoundaries{})
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_MissingBoundaryDropsOnlyThatRegion(t *testing.T) {
	territories := &stubTerritories{records: []territory.TerritoryRecord{
		record("Andi", "D1"),
		record("Budi", "D2"), // no boundary resource
	}}
	boundaries := &stubBoundaries{rings: map[string]geo.Ring{"D1": squareRing()}}
	logger := testutil.NewMockLogger()

	s := NewSession(territories, boundaries, WithLogger(logger))
	s.Start(context.Background())

	assert.Equal(t, StateReady, s.State())

	regions := s.Regions()
	require.Len(t, regions, 1)
	assert.Equal(t, "Andi", regions[0].EmployeeName)

	// Marker falls inside the square's bounding box.
	assert.GreaterOrEqual(t, regions[0].Marker.Lat, 0.0)
	assert.LessOrEqual(t, regions[0].Marker.Lat, 2.0)
	assert.GreaterOrEqual(t, regions[0].Marker.Lng, 0.0)
	assert.LessOrEqual(t, regions[0].Marker.Lng, 2.0)

	// The dropped record is logged, never fatal.
	assert.True(t, logger.HasEntry("warn", "Dropping region with unresolvable boundary"))
}

func TestSession_TerritoryFetchFailureIsFatal(t *testing.T) {
	territories := &stubTerritories{err: errors.Transport(nil, "connection refused")}
	boundaries := &stubBoundaries{rings: map[string]geo.Ring{"D1": squareRing()}}

	s := NewSession(territories, boundaries)
	s.Start(context.Background())

	assert.Equal(t, StateError, s.State())
	assert.True(t, errors.IsCode(s.Err(), errors.ErrCodeTransport))
	assert.Empty(t, s.Regions())
	assert.Zero(t, boundaries.callCount(), "no boundary fetches after a fatal territory failure")
}

func TestSession_RefreshRecoversFromError(t *testing.T) {
	territories := &stubTerritories{err: errors.Transport(nil, "connection refused")}
	boundaries := &stubBoundaries{rings: map[string]geo.Ring{"D1": squareRing()}}

	s := NewSession(territories, boundaries)
	s.Start(context.Background())
	require.Equal(t, StateError, s.State())

	territories.err = nil
	territories.records = []territory.TerritoryRecord{record("Andi", "D1")}
	s.Refresh(context.Background())

	assert.Equal(t, StateReady, s.State())
	assert.Nil(t, s.Err())
	assert.Len(t, s.Regions(), 1)
}

func TestSession_RefreshReplacesRegions(t *testing.T) {
	territories := &stubTerritories{records: []territory.TerritoryRecord{record("Andi", "D1")}}
	boundaries := &stubBoundaries{rings: map[string]geo.Ring{"D1": squareRing(), "D3": squareRing()}}

	s := NewSession(territories, boundaries)
	s.Start(context.Background())
	require.Len(t, s.Regions(), 1)

	territories.records = []territory.TerritoryRecord{record("Citra", "D3")}
	s.Refresh(context.Background())

	regions := s.Regions()
	require.Len(t, regions, 1)
	assert.Equal(t, "Citra", regions[0].EmployeeName)
}

func TestSession_SelectMarkerAndClosePanel(t *testing.T) {
	details := []territory.DetailRow{
		{ProductName: "A", CompetitorName: "X", RetailName: "R1", RetailAddress: "Addr1"},
		{ProductName: "B", CompetitorName: "X", RetailName: "R1", RetailAddress: "Addr1"},
	}
	territories := &stubTerritories{records: []territory.TerritoryRecord{record("Andi", "D1", details...)}}
	boundaries := &stubBoundaries{rings: map[string]geo.Ring{"D1": squareRing()}}

	s := NewSession(territories, boundaries)
	s.Start(context.Background())

	require.NoError(t, s.SelectMarker(0))
	assert.Equal(t, StatePanelOpen, s.State())

	panel, err := s.Panel()
	require.NoError(t, err)
	assert.Equal(t, "Andi", panel.EmployeeName)
	assert.Equal(t, "Jawa Timur, Surabaya, Gubeng", panel.RegionPath)
	assert.Equal(t, "A, B", panel.Products)
	assert.Equal(t, "X", panel.Competitors)
	assert.Equal(t, "R1", panel.Retails)
	require.Len(t, panel.RetailGroups, 1)
	assert.Equal(t, []string{"A", "B"}, panel.RetailGroups[0].Products)

	s.ClosePanel()
	assert.Equal(t, StateReady, s.State())
	_, err = s.Panel()
	assert.Error(t, err)
}

func TestSession_PanelPlaceholders(t *testing.T) {
	territories := &stubTerritories{records: []territory.TerritoryRecord{record("Andi", "D1")}}
	boundaries := &stubBoundaries{rings: map[string]geo.Ring{"D1": squareRing()}}

	s := NewSession(territories, boundaries)
	s.Start(context.Background())
	require.NoError(t, s.SelectMarker(0))

	panel, err := s.Panel()
	require.NoError(t, err)
	assert.Equal(t, NoProductsPlaceholder, panel.Products)
	assert.Equal(t, NoCompetitorsPlaceholder, panel.Competitors)
	assert.Equal(t, NoRetailsPlaceholder, panel.Retails)
}

func TestSession_SelectMarkerValidation(t *testing.T) {
	territories := &stubTerritories{records: []territory.TerritoryRecord{record("Andi", "D1")}}
	boundaries := &stubBoundaries{rings: map[string]geo.Ring{"D1": squareRing()}}

	s := NewSession(territories, boundaries)
	assert.Error(t, s.SelectMarker(0), "selection before load must fail")

	s.Start(context.Background())
	assert.Error(t, s.SelectMarker(5))
	assert.Error(t, s.SelectMarker(-1))
}

func TestSession_CloseDiscardsLateResults(t *testing.T) {
	territories := &stubTerritories{records: []territory.TerritoryRecord{record("Andi", "D1")}}
	boundaries := &stubBoundaries{
		rings:   map[string]geo.Ring{"D1": squareRing()},
		release: make(chan struct{}),
	}

	s := NewSession(territories, boundaries)

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	// Wait for the boundary fetch to be in flight, then tear down.
	require.Eventually(t, func() bool { return boundaries.callCount() == 1 },
		time.Second, time.Millisecond)
	s.Close()
	close(boundaries.release)
	<-done

	assert.Empty(t, s.Regions(), "results settling after teardown must be discarded")
}

func TestSession_RefreshAfterCloseIsNoOp(t *testing.T) {
	territories := &stubTerritories{records: []territory.TerritoryRecord{record("Andi", "D1")}}
	boundaries := &stubBoundaries{rings: map[string]geo.Ring{"D1": squareRing()}}

	s := NewSession(territories, boundaries)
	s.Close()
	s.Refresh(context.Background())

	assert.Zero(t, territories.calls)
	assert.Empty(t, s.Regions())
}

type stubTheme struct {
	mu       sync.Mutex
	current  string
	onChange func(string)
}

func (s *stubTheme) Current(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

func (s *stubTheme) Watch(_ context.Context, onChange func(string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = onChange
	return nil
}

func (s *stubTheme) push(theme string) {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(theme)
	}
}

func TestSession_ThemeBinding(t *testing.T) {
	theme := &stubTheme{current: "dark"}
	s := NewSession(&stubTerritories{}, &stubBoundaries{})

	// Late binding reads the pre-existing value synchronously.
	require.NoError(t, s.BindTheme(context.Background(), theme))
	assert.True(t, s.Dark())

	theme.push("light")
	assert.False(t, s.Dark())

	theme.push("dark")
	assert.True(t, s.Dark())
}

type ctxRecordingTheme struct {
	stubTheme
	watchCtx context.Context
}

func (s *ctxRecordingTheme) Watch(ctx context.Context, onChange func(string)) error {
	s.watchCtx = ctx
	return s.stubTheme.Watch(ctx, onChange)
}

func TestSession_RebindThemeCancelsPriorWatch(t *testing.T) {
	first := &ctxRecordingTheme{stubTheme: stubTheme{current: "dark"}}
	second := &stubTheme{current: "light"}
	s := NewSession(&stubTerritories{}, &stubBoundaries{})

	require.NoError(t, s.BindTheme(context.Background(), first))
	require.NoError(t, s.BindTheme(context.Background(), second))

	select {
	case <-first.watchCtx.Done():
	default:
		t.Fatal("superseded watch context still live after rebind")
	}

	// The replacement subscription keeps working.
	assert.False(t, s.Dark())
	second.push("dark")
	assert.True(t, s.Dark())
}

func TestSession_ThemeChangeAfterCloseIgnored(t *testing.T) {
	theme := &stubTheme{current: "light"}
	s := NewSession(&stubTerritories{}, &stubBoundaries{})
	require.NoError(t, s.BindTheme(context.Background(), theme))

	s.Close()
	theme.push("dark")
	assert.False(t, s.Dark())
}
