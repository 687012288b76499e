package postgres

import (
	"context"
	"database/sql"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// mapRowsQuery is the full coverage join: one output row per observed
// (territory, product, competitor, retail) combination.  Optional branches
// of the hierarchy come back as empty strings so the application layer never
// sees NULLs.
const mapRowsQuery = `
SELECT
	e.name,
	COALESCE(e.image, ''),
	COALESCE(e.color, ''),
	COALESCE(parent.name, ''),
	p.name,
	c.name,
	d.id,
	d.code,
	d.name,
	COALESCE(v.name, ''),
	COALESCE(pr.name, ''),
	COALESCE(pc.name, ''),
	COALESCE(r.name, ''),
	COALESCE(r.address, '')
FROM sales_coverage_areas sca
JOIN employees e            ON e.id = sca.employee_id
LEFT JOIN employees parent  ON parent.id = e.parent_id
JOIN provinces p            ON p.id = sca.province_id
JOIN cities c               ON c.id = sca.city_id
JOIN districts d            ON d.id = sca.district_id
LEFT JOIN villages v        ON v.id = sca.village_id
LEFT JOIN product_distribution_areas pda ON pda.sales_coverage_area_id = sca.id
LEFT JOIN products pr       ON pr.id = pda.product_id
LEFT JOIN product_competitors pc ON pc.product_id = pr.id
LEFT JOIN retails r         ON r.sales_coverage_area_id = sca.id
ORDER BY e.name, d.id, v.name NULLS FIRST`

const listAreasQuery = `
SELECT
	sca.id,
	sca.employee_id,
	sca.province_id,
	p.name,
	sca.city_id,
	c.name,
	sca.district_id,
	d.name,
	COALESCE(sca.village_id, 0),
	COALESCE(v.name, '')
FROM sales_coverage_areas sca
JOIN provinces p     ON p.id = sca.province_id
JOIN cities c        ON c.id = sca.city_id
JOIN districts d     ON d.id = sca.district_id
LEFT JOIN villages v ON v.id = sca.village_id`

// CoverageRepo is the PostgreSQL implementation of
// territory.CoverageRepository.
type CoverageRepo struct {
	conn   *Connection
	logger logging.Logger
}

// NewCoverageRepo builds a CoverageRepo.
func NewCoverageRepo(conn *Connection, logger logging.Logger) *CoverageRepo {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CoverageRepo{conn: conn, logger: logger}
}

var _ territory.CoverageRepository = (*CoverageRepo)(nil)

// MapRows runs the full coverage join.
func (r *CoverageRepo) MapRows(ctx context.Context) ([]territory.CoverageRow, error) {
	rows, err := r.conn.DB().QueryContext(ctx, mapRowsQuery)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "coverage join query failed")
	}
	defer rows.Close()

	out := make([]territory.CoverageRow, 0)
	for rows.Next() {
		var row territory.CoverageRow
		if err := rows.Scan(
			&row.EmployeeName,
			&row.EmployeeImage,
			&row.EmployeeColor,
			&row.EmployeeParent,
			&row.ProvinceName,
			&row.CityName,
			&row.DistrictID,
			&row.DistrictCode,
			&row.DistrictName,
			&row.VillageName,
			&row.ProductName,
			&row.CompetitorName,
			&row.RetailName,
			&row.RetailAddress,
		); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan coverage row")
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "coverage row iteration failed")
	}
	return out, nil
}

// List returns every coverage assignment with resolved location names.
func (r *CoverageRepo) List(ctx context.Context) ([]territory.CoverageAreaDetail, error) {
	rows, err := r.conn.DB().QueryContext(ctx, listAreasQuery+" ORDER BY sca.id")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "coverage list query failed")
	}
	defer rows.Close()

	out := make([]territory.CoverageAreaDetail, 0)
	for rows.Next() {
		var area territory.CoverageAreaDetail
		if err := scanAreaDetail(rows, &area); err != nil {
			return nil, err
		}
		out = append(out, area)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "coverage list iteration failed")
	}
	return out, nil
}

// Get returns one coverage assignment by id.
func (r *CoverageRepo) Get(ctx context.Context, id int) (*territory.CoverageAreaDetail, error) {
	row := r.conn.DB().QueryRowContext(ctx, listAreasQuery+" WHERE sca.id = $1", id)

	var area territory.CoverageAreaDetail
	if err := scanAreaDetail(row, &area); err != nil {
		return nil, err
	}
	return &area, nil
}

// Exists reports whether the exact same area combination is already stored.
// A zero VillageID matches rows whose village_id is NULL.
func (r *CoverageRepo) Exists(ctx context.Context, area *territory.CoverageArea, excludeID int) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM sales_coverage_areas
	WHERE employee_id = $1
	  AND province_id = $2
	  AND city_id = $3
	  AND district_id = $4
	  AND village_id IS NOT DISTINCT FROM NULLIF($5, 0)
	  AND ($6 = 0 OR id <> $6)
)`
	var exists bool
	err := r.conn.DB().QueryRowContext(ctx, q,
		area.EmployeeID, area.ProvinceID, area.CityID, area.DistrictID, area.VillageID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "coverage existence check failed")
	}
	return exists, nil
}

// Create stores a new assignment and returns its id.
func (r *CoverageRepo) Create(ctx context.Context, area *territory.CoverageArea) (int, error) {
	const q = `
INSERT INTO sales_coverage_areas (employee_id, province_id, city_id, district_id, village_id)
VALUES ($1, $2, $3, $4, NULLIF($5, 0))
RETURNING id`
	var id int
	err := r.conn.DB().QueryRowContext(ctx, q,
		area.EmployeeID, area.ProvinceID, area.CityID, area.DistrictID, area.VillageID,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create coverage area")
	}
	return id, nil
}

// Update rewrites an existing assignment in place.
func (r *CoverageRepo) Update(ctx context.Context, area *territory.CoverageArea) error {
	const q = `
UPDATE sales_coverage_areas
SET employee_id = $1, province_id = $2, city_id = $3, district_id = $4, village_id = NULLIF($5, 0)
WHERE id = $6`
	res, err := r.conn.DB().ExecContext(ctx, q,
		area.EmployeeID, area.ProvinceID, area.CityID, area.DistrictID, area.VillageID, area.ID,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update coverage area")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrCodeCoverageNotFound, "coverage area not found")
	}
	return nil
}

// Delete removes an assignment by id.
func (r *CoverageRepo) Delete(ctx context.Context, id int) error {
	res, err := r.conn.DB().ExecContext(ctx, "DELETE FROM sales_coverage_areas WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete coverage area")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrCodeCoverageNotFound, "coverage area not found")
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAreaDetail(row rowScanner, area *territory.CoverageAreaDetail) error {
	err := row.Scan(
		&area.ID,
		&area.EmployeeID,
		&area.ProvinceID,
		&area.ProvinceName,
		&area.CityID,
		&area.CityName,
		&area.DistrictID,
		&area.DistrictName,
		&area.VillageID,
		&area.VillageName,
	)
	if err == sql.ErrNoRows {
		return errors.New(errors.ErrCodeCoverageNotFound, "coverage area not found")
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan coverage area")
	}
	return nil
}
