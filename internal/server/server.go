// Package server exposes the GM service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/omarshaarawi/gmsim/internal/config"
	"github.com/omarshaarawi/gmsim/internal/service"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

const maxBodyBytes = 1 << 20

type Server struct {
	svc     *service.GMService
	cfg     config.HTTP
	handler http.Handler
}

// New builds the router. mcpHandler is mounted at cfg.MCPPath when non-nil.
func New(svc *service.GMService, cfg config.HTTP, mcpHandler http.Handler) *Server {
	s := &Server{svc: svc, cfg: cfg}

	r := mux.NewRouter()
	r.Use(s.withTimeout)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/health", s.health).Methods("GET")
	r.HandleFunc("/api/leagues", s.listLeagues).Methods("GET")
	r.HandleFunc("/api/leagues/{sport}", s.getLeague).Methods("GET")

	r.HandleFunc("/api/gm/simulate-season", s.simulateSeason).Methods("POST")
	r.HandleFunc("/api/gm/trades", s.submitTrade).Methods("POST")
	r.HandleFunc("/api/gm/trades/{id}", s.getTrade).Methods("GET")
	r.HandleFunc("/api/gm/what-if", s.whatIf).Methods("POST")
	r.HandleFunc("/api/gm/monte-carlo", s.monteCarlo).Methods("POST")

	if mcpHandler != nil && cfg.MCPPath != "" {
		r.PathPrefix(cfg.MCPPath).Handler(mcpHandler)
	}

	var h http.Handler = r
	if len(cfg.CORSOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(cfg.CORSOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		)(h)
	}
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(h)
	s.handler = handlers.CustomLoggingHandler(io.Discard, h, logRequest)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) withTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	slog.Info("HTTP request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"size", p.Size,
		"duration", time.Since(p.TimeStamp))
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...any) {
	slog.Error("Recovered from panic in handler", "panic", v)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Error: "route not found"})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Success: false, Error: "method not allowed"})
}

// writeError maps engine errors to a status and a caller-safe message.
func writeError(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func statusFor(err error) (int, string) {
	var e *simerr.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "internal error"
	}
	switch e.Code {
	case simerr.CodeValidation, simerr.CodeUnknownSport:
		return http.StatusBadRequest, e.Error()
	case simerr.CodeTeamNotFound, simerr.CodeTradeNotFound:
		return http.StatusNotFound, e.Error()
	case simerr.CodeProviderUnavailable:
		return http.StatusBadGateway, "team data provider unavailable"
	case simerr.CodeTimeout:
		return http.StatusGatewayTimeout, "simulation timed out"
	case simerr.CodeCancelled:
		return http.StatusServiceUnavailable, "simulation cancelled"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func decode(r *http.Request, w http.ResponseWriter, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return simerr.Validationf("invalid JSON body: %v", err)
	}
	return nil
}
