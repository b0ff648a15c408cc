package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/repository"
)

// SettingsHandlers serves the store payment settings.
type SettingsHandlers struct {
	settings *repository.Settings
}

func NewSettingsHandlers(settings *repository.Settings) *SettingsHandlers {
	return &SettingsHandlers{settings: settings}
}

// GetSettings returns the current settings. Customers need them to render
// the UPI payment screen, so this is not admin-only.
func (h *SettingsHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.settings.Get())
}

// SaveSettings replaces the settings document.
func (h *SettingsHandlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.settings.Save(r.Context(), settings); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
