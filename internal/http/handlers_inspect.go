// Package httpx provides the HTTP handlers and utilities for the layerpeek
// inspection API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/layerpeek/layerpeek/internal/domain/model"
	"github.com/layerpeek/layerpeek/internal/service"
)

// InspectHandlers provides HTTP handlers for inspection job operations.
type InspectHandlers struct {
	Svc *service.InspectionService
}

// CreateInspection handles POST /inspect: it creates a job and returns its
// id without waiting for processing.
func (h *InspectHandlers) CreateInspection(w http.ResponseWriter, r *http.Request) {
	var req model.CreateInspectionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		RenderError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// GetJob handles GET /jobs/{id}: the polling endpoint. Clients repeat this
// query on an interval until the status is terminal.
func (h *InspectHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return
	}

	status, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}

// GetJobResult handles GET /jobs/{id}/result: it serves the cached
// inspection result, falling back to the result embedded in a completed job
// record, else 404.
func (h *InspectHandlers) GetJobResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return
	}

	payload, err := h.Svc.Result(r.Context(), id)
	if err != nil {
		RenderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		return
	}
}
