// Package rest exposes the query endpoint over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kubeask/kubeask/internal/api/middleware"
)

// QueryDispatcher processes one natural-language query into an answer.
type QueryDispatcher interface {
	Dispatch(ctx context.Context, query string) string
}

// QueryRequest is the inbound request body.
type QueryRequest struct {
	// Query is a pointer so a missing field is distinguishable from "".
	Query *string `json:"query"`
}

// QueryResponse echoes the query with its answer.
type QueryResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// Handler manages HTTP request handlers
type Handler struct {
	dispatcher QueryDispatcher
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(d QueryDispatcher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		dispatcher: d,
		logger:     logger,
	}
}

// SetupRoutes configures API routes
func SetupRoutes(router *mux.Router, h *Handler) {
	router.HandleFunc("/query", h.Query).Methods("POST")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "kubeask"})
	}).Methods("GET")
}

// Query handles POST /query
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestIDFromContext(r.Context())

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Client-caused; not a system failure.
		h.logger.Warn("malformed request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		respondError(w, http.StatusBadRequest, ErrCodeValidationFailed, "Invalid request body", requestID)
		return
	}

	if req.Query == nil || *req.Query == "" {
		h.logger.Warn("missing query field", zap.String("request_id", requestID))
		respondError(w, http.StatusBadRequest, ErrCodeValidationFailed, "Query field is required", requestID)
		return
	}

	h.logger.Info("received query",
		zap.String("request_id", requestID),
		zap.String("query", *req.Query))

	answer := h.dispatcher.Dispatch(r.Context(), *req.Query)

	h.logger.Info("generated answer",
		zap.String("request_id", requestID),
		zap.String("answer", answer))

	respondJSON(w, http.StatusOK, QueryResponse{Query: *req.Query, Answer: answer})
}
