package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/omicsops/samplectl/internal/loader"
	"github.com/omicsops/samplectl/internal/model"
	"github.com/omicsops/samplectl/internal/utils/logger"
	"github.com/omicsops/samplectl/internal/validator"
	"go.uber.org/zap"
)

// maxSheetBytes caps the request body for /v1/validate
const maxSheetBytes = 4 << 20

// Server exposes sheet validation over HTTP
type Server struct {
	httpServer *http.Server
}

// New creates a server listening on the given address
func New(addr string) *Server {
	s := &Server{}

	router := mux.NewRouter()
	POST := router.Methods("POST").Subrouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	POST.HandleFunc("/v1/validate", s.handleValidate)
	GET.HandleFunc("/v1/vocab", s.handleVocab)
	GET.HandleFunc("/v1/vocab/{key}", s.handleVocabKey)
	GET.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Start begins serving and blocks until the listener closes
func (s *Server) Start() error {
	logger.Info("Starting validation server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("validation server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down validation server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the underlying HTTP handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// errorResponse is the JSON body for failed requests
type errorResponse struct {
	Error string `json:"error"`
}

// handleValidate accepts a YAML sample sheet and returns the validation
// result as JSON. File existence checks are disabled since paths in the
// sheet are relative to the client, not the server.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSheetBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	sheet, err := loader.FromBytes(body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	result := validator.NewValidator(sheet).Validate()
	logger.Debug("Validated sheet over HTTP",
		zap.Int("samples", len(sheet.Details)),
		zap.Bool("valid", result.Valid))

	writeJSON(w, http.StatusOK, result)
}

// handleVocab returns all tool vocabularies
func (s *Server) handleVocab(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Vocabularies)
}

// handleVocabKey returns the vocabulary for one algorithm key
func (s *Server) handleVocabKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	vocab, ok := model.Vocabulary(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no vocabulary for key %q", key)})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{key: vocab})
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
