package territory

import "context"

// CoverageRepository is the persistence port for coverage assignments and
// the flat map join.  Implementations live in the infrastructure layer.
type CoverageRepository interface {
	// MapRows runs the full coverage join and returns one row per observed
	// (territory, product, competitor, retail) combination, ordered by
	// employee then district.
	MapRows(ctx context.Context) ([]CoverageRow, error)

	// List returns every coverage assignment with its resolved location names.
	List(ctx context.Context) ([]CoverageAreaDetail, error)

	// Get returns one coverage assignment by id.
	Get(ctx context.Context, id int) (*CoverageAreaDetail, error)

	// Exists reports whether an assignment with the exact same
	// (employee, province, city, district, village) combination is already
	// stored, excluding the assignment with excludeID when non-zero.
	Exists(ctx context.Context, area *CoverageArea, excludeID int) (bool, error)

	// Create stores a new assignment and returns its id.
	Create(ctx context.Context, area *CoverageArea) (int, error)

	// Update rewrites an existing assignment in place.
	Update(ctx context.Context, area *CoverageArea) error

	// Delete removes an assignment by id.
	Delete(ctx context.Context, id int) error
}
