package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rxprasetya/sebaran-penjualan/internal/domain/territory"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// CoverageService is the application-layer surface the coverage handler
// drives.
type CoverageService interface {
	List(ctx context.Context) ([]territory.CoverageAreaDetail, error)
	Get(ctx context.Context, id int) (*territory.CoverageAreaDetail, error)
	Create(ctx context.Context, area *territory.CoverageArea) (int, error)
	Update(ctx context.Context, area *territory.CoverageArea) error
	Delete(ctx context.Context, id int) error
}

// CoverageHandler exposes CRUD over coverage assignments.
type CoverageHandler struct {
	service CoverageService
}

// NewCoverageHandler builds a CoverageHandler.
func NewCoverageHandler(service CoverageService) *CoverageHandler {
	return &CoverageHandler{service: service}
}

// coverageAreaRequest is the write payload for create and update.
type coverageAreaRequest struct {
	EmployeeID int `json:"employeeID"`
	ProvinceID int `json:"provinceID"`
	CityID     int `json:"cityID"`
	DistrictID int `json:"districtID"`
	VillageID  int `json:"villageID"`
}

func (req *coverageAreaRequest) toArea(id int) *territory.CoverageArea {
	return &territory.CoverageArea{
		ID:         id,
		EmployeeID: req.EmployeeID,
		ProvinceID: req.ProvinceID,
		CityID:     req.CityID,
		DistrictID: req.DistrictID,
		VillageID:  req.VillageID,
	}
}

// List handles GET /api/sales-coverage-areas.
func (h *CoverageHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.service.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": areas})
}

// Get handles GET /api/sales-coverage-areas/{areaID}.
func (h *CoverageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := areaID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	area, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": area})
}

// Create handles POST /api/sales-coverage-areas.
func (h *CoverageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req coverageAreaRequest
	if err := decodeBody(r, &req); err != nil {
		writeAppError(w, err)
		return
	}

	id, err := h.service.Create(r.Context(), req.toArea(0))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// Update handles PUT /api/sales-coverage-areas/{areaID}.
func (h *CoverageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := areaID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req coverageAreaRequest
	if err := decodeBody(r, &req); err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.service.Update(r.Context(), req.toArea(id)); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id})
}

// Delete handles DELETE /api/sales-coverage-areas/{areaID}.
func (h *CoverageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := areaID(r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func areaID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "areaID"))
	if err != nil || id < 1 {
		return 0, errors.InvalidParam("area id must be a positive integer")
	}
	return id, nil
}
