// Package coverageapi fetches territory records from the coverage-area HTTP
// endpoint and normalizes them for the map session.
package coverageapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// envelope is the wire shape of the coverage endpoint response.
type envelope struct {
	Data []territory.TerritoryRecord `json:"data"`
}

// Loader fetches the full territory-record list.  It does not retry: a
// transport or parse failure fails the whole refresh, partial results are
// never produced.
type Loader struct {
	endpoint string
	client   *http.Client
}

// NewLoader builds a Loader for the given endpoint URL.  A nil client falls
// back to http.DefaultClient.
func NewLoader(endpoint string, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{endpoint: endpoint, client: client}
}

// FetchTerritories GETs the coverage endpoint and decodes its data
// envelope.  Missing villageName decodes as the empty string and a missing
// details array becomes an empty slice, so downstream grouping never has to
// consider nulls.
func (l *Loader) FetchTerritories(ctx context.Context) ([]territory.TerritoryRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTransport, "failed to build territory request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Transport(err, "territory fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrCodeTransport,
			fmt.Sprintf("territory fetch returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Transport(err, "failed to read territory response")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTransport, "territory response is not valid JSON")
	}

	records := env.Data
	if records == nil {
		records = []territory.TerritoryRecord{}
	}
	for i := range records {
		if records[i].Details == nil {
			records[i].Details = []territory.DetailRow{}
		}
	}
	return records, nil
}
