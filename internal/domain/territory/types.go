// Package territory defines the sales-coverage domain model: the flat
// coverage rows produced by the relational join, the per-territory records
// served to the map, the renderable regions derived from them, and the
// grouping/deduplication rules for drill-down details.
package territory

import (
	"github.com/rxprasetya/sebaran-penjualan/pkg/geo"
)

// DetailRow is one (product x competitor x retail) combination observed in a
// territory.  Any field may be empty; a row only participates in per-retail
// grouping when both RetailName and RetailAddress are non-empty.
type DetailRow struct {
	ProductName    string `json:"productName"`
	CompetitorName string `json:"competitorName"`
	RetailName     string `json:"retailName"`
	RetailAddress  string `json:"retailAddress"`
}

// TerritoryRecord is one coverage assignment: an employee bound to a
// (province, city, district, optional village) area, with the detail rows
// observed there.
//
// VillageName absence is represented as the empty string, never a null,
// which keeps grouping-key construction trivial.  DistrictCode is non-empty
// and uniquely identifies one boundary resource.
type TerritoryRecord struct {
	EmployeeName   string      `json:"employeeName"`
	EmployeeImage  string      `json:"employeeImage"`
	EmployeeColor  string      `json:"employeeColor"`
	EmployeeParent string      `json:"employeeParent"`
	ProvinceName   string      `json:"provinceName"`
	CityName       string      `json:"cityName"`
	DistrictID     int         `json:"districtID"`
	DistrictCode   string      `json:"districtCode"`
	DistrictName   string      `json:"districtName"`
	VillageName    string      `json:"villageName"`
	Details        []DetailRow `json:"details"`
}

// RegionPolygon is a TerritoryRecord after boundary resolution: the
// renderable outline ring, a marker point inside (or very near) it, and a
// copy of the display fields the drill-down panel needs.
//
// RegionPolygons are owned exclusively by the map orchestrator's render
// cycle.  They hold no back-references, are never mutated in place, and are
// recomputed wholesale on every refresh.
type RegionPolygon struct {
	Ring   geo.Ring   `json:"coords"`
	Color  string     `json:"color"`
	Marker geo.LatLng `json:"pointLocation"`

	EmployeeName   string      `json:"name"`
	EmployeeImage  string      `json:"employeeImage"`
	EmployeeParent string      `json:"employeeParent"`
	ProvinceName   string      `json:"province"`
	CityName       string      `json:"city"`
	DistrictName   string      `json:"district"`
	VillageName    string      `json:"village"`
	Details        []DetailRow `json:"details"`
}

// RegionPath returns the literal hierarchy path shown in the panel header:
// "province, city, district" plus ", village" when a village is set.
func (r *RegionPolygon) RegionPath() string {
	path := r.ProvinceName + ", " + r.CityName + ", " + r.DistrictName
	if r.VillageName != "" {
		path += ", " + r.VillageName
	}
	return path
}

// GroupedRetailDetail is the per-retail summary derived from a region's
// detail rows: one entry per unique (retailName, retailAddress) pair with
// the distinct products and competitors seen there.
type GroupedRetailDetail struct {
	RetailName    string   `json:"retailName"`
	RetailAddress string   `json:"retailAddress"`
	Products      []string `json:"products"`
	Competitors   []string `json:"competitors"`
}

// CoverageRow is one flat row of the coverage join: territory identity plus
// a single observed product/competitor/retail combination.  The application
// layer folds a sequence of these into TerritoryRecords.
type CoverageRow struct {
	EmployeeName   string
	EmployeeImage  string
	EmployeeColor  string
	EmployeeParent string
	ProvinceName   string
	CityName       string
	DistrictID     int
	DistrictCode   string
	DistrictName   string
	VillageName    string
	ProductName    string
	CompetitorName string
	RetailName     string
	RetailAddress  string
}

// CoverageArea is a persisted coverage assignment.  VillageID zero means the
// assignment covers the whole district.
type CoverageArea struct {
	ID         int `json:"id"`
	EmployeeID int `json:"employeeID"`
	ProvinceID int `json:"provinceID"`
	CityID     int `json:"cityID"`
	DistrictID int `json:"districtID"`
	VillageID  int `json:"villageID"`
}

// CoverageAreaDetail is a coverage assignment joined with the names of its
// location hierarchy, as returned by lookups for the edit form.
type CoverageAreaDetail struct {
	ID           int    `json:"id"`
	EmployeeID   int    `json:"employeeID"`
	ProvinceID   int    `json:"provinceID"`
	ProvinceName string `json:"provinceName"`
	CityID       int    `json:"cityID"`
	CityName     string `json:"cityName"`
	DistrictID   int    `json:"districtID"`
	DistrictName string `json:"districtName"`
	VillageID    int    `json:"villageID"`
	VillageName  string `json:"villageName"`
}
