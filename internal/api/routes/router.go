package routes

import (
	"net/http"

	"github.com/mediscope-ai/backend/internal/api/handlers"
	"github.com/mediscope-ai/backend/internal/api/middleware"
	"github.com/mediscope-ai/backend/internal/application/services"
	"github.com/mediscope-ai/backend/internal/infrastructure/observability"
)

// Router wires the HTTP surface: a thin JSON glue layer over the engine.
type Router struct {
	mux *http.ServeMux

	predictionHandler *handlers.PredictionHandler
	recordHandler     *handlers.RecordHandler
	doctorHandler     *handlers.DoctorHandler

	doctorService *services.DoctorService
	metrics       *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	predictionHandler *handlers.PredictionHandler,
	recordHandler *handlers.RecordHandler,
	doctorHandler *handlers.DoctorHandler,
	doctorService *services.DoctorService,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		predictionHandler: predictionHandler,
		recordHandler:     recordHandler,
		doctorHandler:     doctorHandler,
		doctorService:     doctorService,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Account creation is the only unauthenticated endpoint
	r.mux.HandleFunc("POST /api/doctors", r.doctorHandler.CreateDoctor)

	auth := middleware.AuthMiddleware(r.doctorService)
	r.mux.Handle("POST /api/predictions", auth(http.HandlerFunc(r.predictionHandler.Predict)))
	r.mux.Handle("GET /api/patients/records", auth(http.HandlerFunc(r.recordHandler.ListRecords)))

	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)
	return handler
}
