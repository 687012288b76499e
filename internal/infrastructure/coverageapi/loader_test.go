package coverageapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

func TestFetchTerritories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": [
				{
					"employeeName": "Andi",
					"employeeColor": "#ff0000",
					"provinceName": "Jawa Timur",
					"cityName": "Surabaya",
					"districtID": 10,
					"districtCode": "D1",
					"districtName": "Gubeng",
					"details": [{"productName": "A"}]
				},
				{
					"employeeName": "Budi",
					"districtID": 11,
					"districtCode": "D2",
					"districtName": "Rungkut"
				}
			]
		}`))
	}))
	defer srv.Close()

	records, err := NewLoader(srv.URL, srv.Client()).FetchTerritories(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Andi", records[0].EmployeeName)
	assert.Equal(t, "D1", records[0].DistrictCode)
	require.Len(t, records[0].Details, 1)

	// Missing villageName and details normalize to zero values, never nil.
	assert.Equal(t, "", records[1].VillageName)
	assert.NotNil(t, records[1].Details)
	assert.Empty(t, records[1].Details)
}

func TestFetchTerritories_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	records, err := NewLoader(srv.URL, srv.Client()).FetchTerritories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetchTerritories_TransportFailures(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewLoader(srv.URL, srv.Client()).FetchTerritories(context.Background())
		assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		_, err := NewLoader(srv.URL, nil).FetchTerritories(context.Background())
		assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data": [}`))
		}))
		defer srv.Close()

		_, err := NewLoader(srv.URL, srv.Client()).FetchTerritories(context.Background())
		assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	})
}
