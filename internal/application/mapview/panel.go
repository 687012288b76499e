package mapview

import (
	"strings"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// Placeholder lines shown when a panel section has no entries.
const (
	NoProductsPlaceholder    = "No product available"
	NoCompetitorsPlaceholder = "No competitor available"
	NoRetailsPlaceholder     = "No retail available"
)

// PanelView is the drill-down panel's render model: employee identity, the
// literal hierarchy path, the three summary lines, and the per-retail
// groups.  It is a pure projection of the selected region plus the theme
// flag.
type PanelView struct {
	EmployeeName   string                          `json:"employeeName"`
	EmployeeImage  string                          `json:"employeeImage"`
	EmployeeParent string                          `json:"employeeParent"`
	RegionPath     string                          `json:"regionPath"`
	Products       string                          `json:"products"`
	Competitors    string                          `json:"competitors"`
	Retails        string                          `json:"retails"`
	RetailGroups   []territory.GroupedRetailDetail `json:"retailGroups"`
	Dark           bool                            `json:"dark"`
}

// Panel builds the view for the currently selected region.  It fails when
// no panel is open.
func (s *Session) Panel() (*PanelView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePanelOpen || s.selected < 0 || s.selected >= len(s.regions) {
		return nil, errors.New(errors.ErrCodeInternal, "no panel is open")
	}

	region := s.regions[s.selected]
	return &PanelView{
		EmployeeName:   region.EmployeeName,
		EmployeeImage:  region.EmployeeImage,
		EmployeeParent: region.EmployeeParent,
		RegionPath:     region.RegionPath(),
		Products:       joinOr(territory.UniqueProducts(region.Details), NoProductsPlaceholder),
		Competitors:    joinOr(territory.UniqueCompetitors(region.Details), NoCompetitorsPlaceholder),
		Retails:        joinOr(uniqueRetails(region.Details), NoRetailsPlaceholder),
		RetailGroups:   territory.GroupByRetail(region.Details),
		Dark:           s.dark,
	}, nil
}

func uniqueRetails(details []territory.DetailRow) []string {
	return territory.UniqueField(details, func(d territory.DetailRow) string { return d.RetailName })
}

// joinOr comma-joins values, or returns the placeholder for an empty list.
func joinOr(values []string, placeholder string) string {
	if len(values) == 0 {
		return placeholder
	}
	return strings.Join(values, ", ")
}
