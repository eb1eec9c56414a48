package httpx

import (
	"net/http"

	"github.com/layerpeek/layerpeek/internal/service"
)

// FileHandlers provides HTTP handlers for single-file content fetches.
type FileHandlers struct {
	Svc *service.FileService
}

// GetFile handles GET /files?image=...&path=...: it reads one file from the
// image's filesystem. Any failure reading the path renders 404.
func (h *FileHandlers) GetFile(w http.ResponseWriter, r *http.Request) {
	image := r.URL.Query().Get("image")
	filePath := r.URL.Query().Get("path")

	rec, err := h.Svc.Fetch(r.Context(), image, filePath)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "file_not_found", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}
