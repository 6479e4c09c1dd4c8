package router

import (
	"net/http"

	"github.com/jas0nkim/pricewatch/internal/delivery/http/handler"
	"github.com/jas0nkim/pricewatch/internal/delivery/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.HandleFunc("POST /api/addversion", h.HandleAddVersion)
	mux.HandleFunc("POST /api/delversion", h.HandleDelVersion)
	mux.HandleFunc("POST /api/schedule", h.HandleSchedule)
	mux.HandleFunc("GET /api/listjobs", h.HandleListJobs)
	mux.HandleFunc("POST /api/cancel", h.HandleCancel)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middlewares
	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
