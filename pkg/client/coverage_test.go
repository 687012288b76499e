package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverageClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sales-coverage-areas", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"id":1,"employeeID":2,"districtID":4,"districtName":"Cibinong"}]}`)
	})

	areas, err := c.Coverage().List(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, 1, areas[0].ID)
	assert.Equal(t, "Cibinong", areas[0].DistrictName)
}

func TestCoverageClient_Get(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sales-coverage-areas/7", r.URL.Path)
		fmt.Fprint(w, `{"data":{"id":7,"employeeID":2,"villageID":0}}`)
	})

	area, err := c.Coverage().Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, area)
	assert.Equal(t, 7, area.ID)
	assert.Zero(t, area.VillageID)
}

func TestCoverageClient_Get_InvalidID(t *testing.T) {
	c, _ := NewClient("http://api.example.com")
	_, err := c.Coverage().Get(context.Background(), 0)
	assert.Error(t, err)
}

func TestCoverageClient_Create(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req CoverageAreaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 4, req.DistrictID)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":42}`)
	})

	id, err := c.Coverage().Create(context.Background(), &CoverageAreaRequest{
		EmployeeID: 1, ProvinceID: 2, CityID: 3, DistrictID: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestCoverageClient_Create_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"code":"CVR_002","message":"sales coverage area already exists"}`)
	})

	_, err := c.Coverage().Create(context.Background(), &CoverageAreaRequest{
		EmployeeID: 1, ProvinceID: 2, CityID: 3, DistrictID: 4,
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "CVR_002", apiErr.Code)
}

func TestCoverageClient_Update(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/sales-coverage-areas/7", r.URL.Path)
		fmt.Fprint(w, `{"id":7}`)
	})

	err := c.Coverage().Update(context.Background(), 7, &CoverageAreaRequest{
		EmployeeID: 1, ProvinceID: 2, CityID: 3, DistrictID: 4, VillageID: 5,
	})
	assert.NoError(t, err)
}

func TestCoverageClient_Delete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/sales-coverage-areas/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.Coverage().Delete(context.Background(), 7))
}

func TestCoverageClient_Delete_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":"CVR_001","message":"sales coverage area not found"}`)
	})

	err := c.Coverage().Delete(context.Background(), 99)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}
