package handlers

import (
	"context"
	"net/http"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
)

// RegionRenderer materializes the fully resolved region list: folded
// territory records joined with their boundary rings and marker points.
type RegionRenderer interface {
	Render(ctx context.Context) ([]territory.RegionPolygon, error)
}

// RegionsHandler serves pre-resolved regions for clients that cannot fetch
// and normalize boundary documents themselves.
type RegionsHandler struct {
	renderer RegionRenderer
}

// NewRegionsHandler builds a RegionsHandler.
func NewRegionsHandler(renderer RegionRenderer) *RegionsHandler {
	return &RegionsHandler{renderer: renderer}
}

type regionsResponse struct {
	Data []territory.RegionPolygon `json:"data"`
}

// Get handles GET /api/regions.
func (h *RegionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	regions, err := h.renderer.Render(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if regions == nil {
		regions = []territory.RegionPolygon{}
	}
	writeJSON(w, http.StatusOK, regionsResponse{Data: regions})
}
