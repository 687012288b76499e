package handlers

import (
	"context"
	"net/http"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
)

// MapDataProvider folds coverage rows into territory records.
type MapDataProvider interface {
	MapData(ctx context.Context) ([]territory.TerritoryRecord, error)
}

// MapHandler serves the folded map data consumed by the map view.
type MapHandler struct {
	provider MapDataProvider
}

// NewMapHandler builds a MapHandler.
func NewMapHandler(provider MapDataProvider) *MapHandler {
	return &MapHandler{provider: provider}
}

// mapResponse is the envelope shape the map session expects.
type mapResponse struct {
	Data []territory.TerritoryRecord `json:"data"`
}

// Get handles GET /api/map.
func (h *MapHandler) Get(w http.ResponseWriter, r *http.Request) {
	records, err := h.provider.MapData(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if records == nil {
		records = []territory.TerritoryRecord{}
	}
	writeJSON(w, http.StatusOK, mapResponse{Data: records})
}
