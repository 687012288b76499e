package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// MapClient accesses the map-data and boundary endpoints.
type MapClient struct {
	client *Client
}

// DetailRow is one observed product/competitor/retail combination in a
// territory.
type DetailRow struct {
	ProductName    string `json:"productName"`
	CompetitorName string `json:"competitorName"`
	RetailName     string `json:"retailName"`
	RetailAddress  string `json:"retailAddress"`
}

// TerritoryRecord is one coverage assignment as served by GET /api/map.
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

// Data fetches the folded territory records.
func (mc *MapClient) Data(ctx context.Context) ([]TerritoryRecord, error) {
	var resp struct {
		Data []TerritoryRecord `json:"data"`
	}
	if err := mc.client.get(ctx, "/api/map", &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []TerritoryRecord{}
	}
	return resp.Data, nil
}

// LatLng is one vertex of a region outline in (lat, lng) order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Region is one pre-resolved map region as served by GET /api/regions: the
// territory record joined with its boundary ring and marker point.
type Region struct {
	Ring           []LatLng    `json:"coords"`
	Color          string      `json:"color"`
	Marker         LatLng      `json:"pointLocation"`
	EmployeeName   string      `json:"name"`
	EmployeeImage  string      `json:"employeeImage"`
	EmployeeParent string      `json:"employeeParent"`
	ProvinceName   string      `json:"province"`
	CityName       string      `json:"city"`
	DistrictName   string      `json:"district"`
	VillageName    string      `json:"village"`
	Details        []DetailRow `json:"details"`
}

// Regions fetches the server-resolved region list.  Use this instead of
// Data plus Boundary when the caller does not need to normalize boundary
// documents itself.
func (mc *MapClient) Regions(ctx context.Context) ([]Region, error) {
	var resp struct {
		Data []Region `json:"data"`
	}
	if err := mc.client.get(ctx, "/api/regions", &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []Region{}
	}
	return resp.Data, nil
}

// Boundary fetches the raw GeoJSON boundary document for a district.
func (mc *MapClient) Boundary(ctx context.Context, districtCode string) (json.RawMessage, error) {
	if districtCode == "" {
		return nil, fmt.Errorf("districtCode is required")
	}
	var doc json.RawMessage
	path := fmt.Sprintf("/geojson/%s.geojson", url.PathEscape(districtCode))
	if err := mc.client.get(ctx, path, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
