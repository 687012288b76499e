package handlers

import (
	"context"
	"net/http"
)

// ThemeStore is the shared theme key with change notification on write.
type ThemeStore interface {
	Current(ctx context.Context) (string, error)
	Set(ctx context.Context, theme string) error
}

// ThemeHandler reads and writes the shared dark/light flag.
type ThemeHandler struct {
	store ThemeStore
}

// NewThemeHandler builds a ThemeHandler.
func NewThemeHandler(store ThemeStore) *ThemeHandler {
	return &ThemeHandler{store: store}
}

type themePayload struct {
	Theme string `json:"theme"`
}

// Get handles GET /api/theme.
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	theme, err := h.store.Current(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themePayload{Theme: theme})
}

// Put handles PUT /api/theme.
func (h *ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var payload themePayload
	if err := decodeBody(r, &payload); err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.store.Set(r.Context(), payload.Theme); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
