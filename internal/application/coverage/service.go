// Package coverage implements the coverage-area use cases: folding the flat
// database join into per-territory records for the map, and CRUD over
// coverage assignments.
package coverage

import (
	"context"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// mapDataCacheKey stores the folded territory-record list.
const mapDataCacheKey = "map:data"

// MapCache is the read-through cache the service keeps folded map data in.
// A nil-safe no-op implementation is acceptable.
type MapCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Metrics receives the service's instrumentation events.  Implementations
// must be safe for concurrent use.
type Metrics interface {
	IncMapDataRequests()
	SetRecordsFolded(n int)
	IncCacheHit()
	IncCacheMiss()
}

// nopMetrics discards every event.
type nopMetrics struct{}

func (nopMetrics) IncMapDataRequests()  {}
func (nopMetrics) SetRecordsFolded(int) {}
func (nopMetrics) IncCacheHit()         {}
func (nopMetrics) IncCacheMiss()        {}

// Service exposes the coverage-area use cases.
type Service struct {
	repo    territory.CoverageRepository
	cache   MapCache
	logger  logging.Logger
	metrics Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics attaches an instrumentation sink.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService builds a Service.  cache may be nil to disable caching.
func NewService(repo territory.CoverageRepository, cache MapCache, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{repo: repo, cache: cache, logger: logger, metrics: nopMetrics{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// recordKey identifies one territory record inside the fold.  The village
// component is the name itself or empty for whole-district assignments;
// keying on a struct avoids the collisions a concatenated string key would
// have when names contain the separator.
type recordKey struct {
	employeeName string
	districtID   int
	villageName  string
}

// MapData returns one TerritoryRecord per coverage assignment, each with the
// detail rows observed in that territory.  Results are cached; any cache
// failure falls back to the database silently.
func (s *Service) MapData(ctx context.Context) ([]territory.TerritoryRecord, error) {
	s.metrics.IncMapDataRequests()

	if s.cache != nil {
		var cached []territory.TerritoryRecord
		if err := s.cache.Get(ctx, mapDataCacheKey, &cached); err == nil {
			s.metrics.IncCacheHit()
			return cached, nil
		}
		s.metrics.IncCacheMiss()
	}

	rows, err := s.repo.MapRows(ctx)
	if err != nil {
		return nil, err
	}

	records := foldRows(rows)
	s.metrics.SetRecordsFolded(len(records))

	if s.cache != nil {
		if err := s.cache.Set(ctx, mapDataCacheKey, records); err != nil {
			s.logger.Warn("Failed to cache map data", logging.Err(err))
		}
	}
	return records, nil
}

// foldRows groups flat join rows into territory records, preserving
// first-appearance order.  A detail row is attached only when it carries at
// least one non-empty field.
func foldRows(rows []territory.CoverageRow) []territory.TerritoryRecord {
	index := make(map[recordKey]int)
	records := make([]territory.TerritoryRecord, 0)

	for _, row := range rows {
		k := recordKey{
			employeeName: row.EmployeeName,
			districtID:   row.DistrictID,
			villageName:  row.VillageName,
		}
		i, ok := index[k]
		if !ok {
			i = len(records)
			index[k] = i
			records = append(records, territory.TerritoryRecord{
				EmployeeName:   row.EmployeeName,
				EmployeeImage:  row.EmployeeImage,
				EmployeeColor:  row.EmployeeColor,
				EmployeeParent: row.EmployeeParent,
				ProvinceName:   row.ProvinceName,
				CityName:       row.CityName,
				DistrictID:     row.DistrictID,
				DistrictCode:   row.DistrictCode,
				DistrictName:   row.DistrictName,
				VillageName:    row.VillageName,
				Details:        []territory.DetailRow{},
			})
		}

		detail := territory.DetailRow{
			ProductName:    row.ProductName,
			CompetitorName: row.CompetitorName,
			RetailName:     row.RetailName,
			RetailAddress:  row.RetailAddress,
		}
		if detail != (territory.DetailRow{}) && !hasDetail(records[i].Details, detail) {
			records[i].Details = append(records[i].Details, detail)
		}
	}
	return records
}

func hasDetail(details []territory.DetailRow, d territory.DetailRow) bool {
	for _, x := range details {
		if x == d {
			return true
		}
	}
	return false
}

// List returns every coverage assignment.
func (s *Service) List(ctx context.Context) ([]territory.CoverageAreaDetail, error) {
	return s.repo.List(ctx)
}

// Get returns one coverage assignment by id.
func (s *Service) Get(ctx context.Context, id int) (*territory.CoverageAreaDetail, error) {
	if id < 1 {
		return nil, errors.InvalidParam("coverage area id must be positive")
	}
	return s.repo.Get(ctx, id)
}

// Create stores a new assignment.  An assignment covering the exact same
// (employee, province, city, district, village) combination is rejected
// with ErrCodeCoverageExists.
func (s *Service) Create(ctx context.Context, area *territory.CoverageArea) (int, error) {
	if err := validateArea(area); err != nil {
		return 0, err
	}

	exists, err := s.repo.Exists(ctx, area, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New(errors.ErrCodeCoverageExists, "coverage area combination already exists")
	}

	id, err := s.repo.Create(ctx, area)
	if err != nil {
		return 0, err
	}
	s.invalidateMapData(ctx)
	return id, nil
}

// Update rewrites an existing assignment, enforcing the same duplicate rule
// as Create but excluding the assignment itself from the check.
func (s *Service) Update(ctx context.Context, area *territory.CoverageArea) error {
	if area.ID < 1 {
		return errors.InvalidParam("coverage area id must be positive")
	}
	if err := validateArea(area); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, area, area.ID)
	if err != nil {
		return err
	}
	if exists {
		return errors.New(errors.ErrCodeCoverageExists, "coverage area combination already exists")
	}

	if err := s.repo.Update(ctx, area); err != nil {
		return err
	}
	s.invalidateMapData(ctx)
	return nil
}

// Delete removes an assignment by id.
func (s *Service) Delete(ctx context.Context, id int) error {
	if id < 1 {
		return errors.InvalidParam("coverage area id must be positive")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateMapData(ctx)
	return nil
}

func (s *Service) invalidateMapData(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, mapDataCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate map data cache", logging.Err(err))
	}
}

// validateArea checks the required hierarchy ids.  VillageID is optional.
func validateArea(area *territory.CoverageArea) error {
	if area == nil {
		return errors.InvalidParam("coverage area is required")
	}
	switch {
	case area.EmployeeID < 1:
		return errors.InvalidParam("employee id is required")
	case area.ProvinceID < 1:
		return errors.InvalidParam("province id is required")
	case area.CityID < 1:
		return errors.InvalidParam("city id is required")
	case area.DistrictID < 1:
		return errors.InvalidParam("district id is required")
	case area.VillageID < 0:
		return errors.InvalidParam("village id must not be negative")
	}
	return nil
}
