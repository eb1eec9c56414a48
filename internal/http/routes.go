package httpx

import (
	"log/slog"
	"net/http"

	"github.com/layerpeek/layerpeek/internal/service"
)

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Inspections *service.InspectionService
	Files       *service.FileService
	Logger      *slog.Logger // Optional
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	inspectHandlers := &InspectHandlers{Svc: services.Inspections}
	fileHandlers := &FileHandlers{Svc: services.Files}

	mux.Handle("POST /inspect", http.HandlerFunc(inspectHandlers.CreateInspection))
	mux.Handle("GET /jobs/{id}", http.HandlerFunc(inspectHandlers.GetJob))
	mux.Handle("GET /jobs/{id}/result", http.HandlerFunc(inspectHandlers.GetJobResult))
	mux.Handle("GET /files", http.HandlerFunc(fileHandlers.GetFile))
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Recover(logger)(Logging(logger)(mux))
}
