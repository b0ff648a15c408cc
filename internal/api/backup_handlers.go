package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/example/bala-store/internal/backup"
)

// maxImportBytes caps an uploaded backup document.
const maxImportBytes = 16 << 20

// BackupHandlers serves export and import of the whole store state.
type BackupHandlers struct {
	bridge *backup.Bridge
}

func NewBackupHandlers(bridge *backup.Bridge) *BackupHandlers {
	return &BackupHandlers{bridge: bridge}
}

// Export streams the full state as a downloadable JSON document.
func (h *BackupHandlers) Export(w http.ResponseWriter, r *http.Request) {
	doc := h.bridge.Export(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.FileName(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(doc)
}

// Import replaces the full state from an uploaded document. The document
// is validated before anything is written.
func (h *BackupHandlers) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		respondError(w, "could not read request body", http.StatusBadRequest)
		return
	}

	if err := h.bridge.Import(r.Context(), data); err != nil {
		if errors.Is(err, backup.ErrInvalidBackupFormat) {
			respondError(w, "invalid or incomplete backup file", http.StatusBadRequest)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "data imported"})
}
