// Package api exposes the HTTP surface: rule configuration, analysis runs,
// activity creation and the creation history.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/bycommute/po-sentinel/internal/activity"
	"github.com/bycommute/po-sentinel/internal/analyzer"
	"github.com/bycommute/po-sentinel/internal/store"
)

// Server wires the document store, the analyzer and the activity creator
// behind the HTTP routes.
type Server struct {
	store    store.Store
	analyzer *analyzer.Service
	creator  *activity.Creator
}

// New creates an API server.
func New(st store.Store, svc *analyzer.Service, creator *activity.Creator) *Server {
	return &Server{store: st, analyzer: svc, creator: creator}
}

// Routes builds the router. CORS is wide open: the operator UI is served
// from a different origin.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/config", s.handleGetConfig)
	r.Post("/config", s.handleSaveConfig)
	r.Get("/history", s.handleGetHistory)
	r.Post("/analyze", s.handleAnalyze)
	r.Post("/activities/create", s.handleCreateActivities)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
