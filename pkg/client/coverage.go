package client

import (
	"context"
	"fmt"
)

// CoverageClient accesses the sales-coverage-area CRUD endpoints.
type CoverageClient struct {
	client *Client
}

// CoverageAreaRequest is the write payload for create and update.  VillageID
// zero assigns the whole district.
type CoverageAreaRequest struct {
	EmployeeID int `json:"employeeID"`
	ProvinceID int `json:"provinceID"`
	CityID     int `json:"cityID"`
	DistrictID int `json:"districtID"`
	VillageID  int `json:"villageID"`
}

// CoverageArea is a coverage assignment joined with the names of its
// location hierarchy.
type CoverageArea struct {
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

// List fetches every coverage assignment.
func (cc *CoverageClient) List(ctx context.Context) ([]CoverageArea, error) {
	var resp struct {
		Data []CoverageArea `json:"data"`
	}
	if err := cc.client.get(ctx, "/api/sales-coverage-areas", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Get fetches one coverage assignment by ID.
func (cc *CoverageClient) Get(ctx context.Context, id int) (*CoverageArea, error) {
	if id < 1 {
		return nil, fmt.Errorf("id must be a positive integer")
	}
	var resp struct {
		Data *CoverageArea `json:"data"`
	}
	if err := cc.client.get(ctx, fmt.Sprintf("/api/sales-coverage-areas/%d", id), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Create registers a new coverage assignment and returns its ID.
func (cc *CoverageClient) Create(ctx context.Context, req *CoverageAreaRequest) (int, error) {
	var resp struct {
		ID int `json:"id"`
	}
	if err := cc.client.post(ctx, "/api/sales-coverage-areas", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// Update replaces an existing coverage assignment.
func (cc *CoverageClient) Update(ctx context.Context, id int, req *CoverageAreaRequest) error {
	if id < 1 {
		return fmt.Errorf("id must be a positive integer")
	}
	return cc.client.put(ctx, fmt.Sprintf("/api/sales-coverage-areas/%d", id), req, nil)
}

// Delete removes a coverage assignment.
func (cc *CoverageClient) Delete(ctx context.Context, id int) error {
	if id < 1 {
		return fmt.Errorf("id must be a positive integer")
	}
	return cc.client.delete(ctx, fmt.Sprintf("/api/sales-coverage-areas/%d", id))
}
