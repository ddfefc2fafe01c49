package api

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/bycommute/po-sentinel/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.LoadRulesRaw(r.Context())
	if err != nil {
		zap.L().Error("load rules", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if err := s.store.SaveRules(r.Context(), body); err != nil {
		zap.L().Error("save rules", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	zap.L().Info("configuration saved")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Configuration sauvegardée",
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.LoadHistory(r.Context())
	if err != nil {
		zap.L().Error("load history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	report, err := s.analyzer.Run(r.Context())
	if err != nil {
		zap.L().Error("analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// createRequest is the body of POST /activities/create. Anomalies must be
// present and an array; validation happens before any side effect.
type createRequest struct {
	Anomalies *[]model.Anomaly `json:"anomalies"`
}

func (s *Server) handleCreateActivities(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Anomalies == nil {
		writeError(w, http.StatusBadRequest, "anomalies array is required")
		return
	}

	ctx := r.Context()
	rules, err := s.store.LoadRules(ctx)
	if err != nil {
		zap.L().Error("load rules", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	history, err := s.store.LoadHistory(ctx)
	if err != nil {
		zap.L().Error("load history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := s.creator.CreateAll(ctx, *req.Anomalies, &rules.Odoo, history)

	if err := s.store.SaveHistory(ctx, history); err != nil {
		zap.L().Error("save history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	zap.L().Info("activity batch processed",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("errors", len(result.Errors)),
	)
	writeJSON(w, http.StatusOK, result)
}
