package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/boundary"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// BoundaryHandler serves raw district boundary documents,
// GET /geojson/{districtCode}.geojson, from whichever store backend is
// configured.
type BoundaryHandler struct {
	store boundary.Store
}

// NewBoundaryHandler builds a BoundaryHandler.
func NewBoundaryHandler(store boundary.Store) *BoundaryHandler {
	return &BoundaryHandler{store: store}
}

// Get streams the boundary document unchanged; normalization is the map
// session's concern, not the server's.
func (h *BoundaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSuffix(chi.URLParam(r, "resource"), ".geojson")
	if code == "" {
		writeAppError(w, errors.InvalidParam("district code is required"))
		return
	}

	data, err := h.store.Fetch(r.Context(), code)
	if err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
