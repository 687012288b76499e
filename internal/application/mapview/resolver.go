package mapview

import (
	"context"
	"sync"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// TerritorySourceFunc adapts a plain function to TerritorySource.
type TerritorySourceFunc func(ctx context.Context) ([]territory.TerritoryRecord, error)

// FetchTerritories calls f.
func (f TerritorySourceFunc) FetchTerritories(ctx context.Context) ([]territory.TerritoryRecord, error) {
	return f(ctx)
}

// Renderer resolves the complete region list in one shot.  It runs the same
// fetch-and-resolve pipeline as a Session but holds no state between calls,
// which suits server-side callers that materialize the map per request.
type Renderer struct {
	territories TerritorySource
	boundaries  BoundarySource
	concurrency int
	logger      logging.Logger
}

// NewRenderer builds a Renderer.  concurrency values below one fall back to
// the session default; a nil logger discards diagnostics.
func NewRenderer(territories TerritorySource, boundaries BoundarySource, concurrency int, logger logging.Logger) *Renderer {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Renderer{
		territories: territories,
		boundaries:  boundaries,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Render fetches the territory records and resolves each one's boundary.  A
// territory fetch failure is fatal and no boundary loads are issued; a
// boundary failure drops only its own record.  Region order follows boundary
// completion, not input order.
func (r *Renderer) Render(ctx context.Context) ([]territory.RegionPolygon, error) {
	records, err := r.territories.FetchTerritories(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	regions := make([]territory.RegionPolygon, 0, len(records))
	resolveRegions(ctx, r.boundaries, r.concurrency, r.logger, records, func(region territory.RegionPolygon) {
		mu.Lock()
		regions = append(regions, region)
		mu.Unlock()
	})
	return regions, nil
}

// resolveRegions loads every record's boundary with bounded concurrency and
// emits one RegionPolygon per successful resolution.  emit runs from loader
// goroutines and must be safe for concurrent use.
func resolveRegions(
	ctx context.Context,
	boundaries BoundarySource,
	concurrency int,
	logger logging.Logger,
	records []territory.TerritoryRecord,
	emit func(territory.RegionPolygon),
) {
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, rec := range records {
		wg.Add(1)
		sem <- struct{}{}
		go func(rec territory.TerritoryRecord) {
			defer wg.Done()
			defer func() { <-sem }()

			ring, marker, err := boundaries.Load(ctx, rec.DistrictCode)
			if err != nil {
				// Droppable per-record failures never block siblings.
				logger.Warn("Dropping region with unresolvable boundary",
					logging.String("district_code", rec.DistrictCode),
					logging.String("code", errors.GetCode(err).String()),
					logging.Err(err),
				)
				return
			}

			emit(territory.RegionPolygon{
				Ring:           ring,
				Color:          rec.EmployeeColor,
				Marker:         marker,
				EmployeeName:   rec.EmployeeName,
				EmployeeImage:  rec.EmployeeImage,
				EmployeeParent: rec.EmployeeParent,
				ProvinceName:   rec.ProvinceName,
				CityName:       rec.CityName,
				DistrictName:   rec.DistrictName,
				VillageName:    rec.VillageName,
				Details:        rec.Details,
			})
		}(rec)
	}
	wg.Wait()
}
