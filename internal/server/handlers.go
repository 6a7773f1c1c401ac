package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/models"
)

func (s *Server) handleEmbeddings(w http.ResponseWriter, r *http.Request) {
	var req models.EmbeddingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("embeddings request", zap.Int("words", len(req.Words)))
	found, err := s.svc.Embeddings(req.Words)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, &models.EmbeddingsResponse{Embeddings: found})
}

func (s *Server) handleTfidf(w http.ResponseWriter, r *http.Request) {
	var req models.TfidfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("tfidf request", zap.Int("documents", len(req.Documents)))
	resp, err := s.svc.Tfidf(req.Documents)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	var req models.VisualizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("visualize request",
		zap.Int("words", len(req.Words)), zap.String("method", req.Method))
	viz, err := s.svc.Visualize(&req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, viz)
}

func (s *Server) handleGetVisualization(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	viz, err := s.svc.Visualization(id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, viz)
}

func (s *Server) handleListVisualizations(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"visualization_ids": s.svc.VisualizationIDs(),
	})
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	var req models.CleanupRequest
	// Body is optional; an empty or absent body means the default limit.
	_ = json.NewDecoder(r.Body).Decode(&req)
	remaining := s.svc.Cleanup(req.MaxItems)
	s.respondJSON(w, http.StatusOK, &models.CleanupResponse{
		Status:         "success",
		RemainingItems: remaining,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"vocabulary_size":       s.svc.TableSize(),
		"embedding_dimensions":  s.svc.TableDimensions(),
		"cached_visualizations": s.svc.CacheSize(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondServiceError maps typed service failures to status codes.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	var ipe *models.InvalidParameterError
	switch {
	case errors.As(err, &ve), errors.As(err, &ipe),
		errors.Is(err, models.ErrInsufficientPoints):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
