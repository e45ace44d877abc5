// Package server exposes the bridging service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snaplink-hq/paybridge/pkg/bridging"
	"github.com/snaplink-hq/paybridge/pkg/logger"
)

// requestsPerMinute bounds quote traffic per client IP. Quotes hit the
// partner fee endpoint, so unbounded callers would exhaust its quota.
const requestsPerMinute = 120

// Server wraps the HTTP server and its routes
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// New creates the HTTP server for the bridging API
func New(listenPort string, svc *bridging.Service, log logger.Logger) *Server {
	s := &Server{logger: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(httprate.LimitByIP(requestsPerMinute, time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/chains", s.handleChains(svc))
		r.Post("/quotes", s.handleQuote(svc))
		r.Get("/intents/{id}", s.handleIntentStatus(svc))
		r.Post("/intents/{id}/deposit", s.handleDeposit(svc))
	})

	s.httpServer = &http.Server{
		Addr:              ":" + listenPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Start begins serving requests and blocks until the listener closes
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChains(svc *bridging.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]any{"chains": svc.SupportedChains()})
	}
}

func (s *Server) handleQuote(svc *bridging.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bridging.QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := svc.Quote(r.Context(), req)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}

		status := http.StatusOK
		if result.IntentID != "" {
			status = http.StatusCreated
		}
		s.writeJSON(w, status, result)
	}
}

func (s *Server) handleIntentStatus(svc *bridging.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Status(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, snap)
	}
}

type depositRequest struct {
	TxHash string `json:"tx_hash"`
}

func (s *Server) handleDeposit(svc *bridging.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req depositRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		snap, err := svc.RecordDeposit(r.Context(), chi.URLParam(r, "id"), req.TxHash)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, snap)
	}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var (
		invalidInput     *bridging.InvalidInputError
		unsupportedChain *bridging.UnsupportedChainError
		assetUnavailable *bridging.AssetUnavailableError
		notFound         *bridging.NotFoundError
		quoteExpired     *bridging.QuoteExpiredError
		partnerDown      *bridging.PartnerUnavailableError
	)
	switch {
	case errors.As(err, &invalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unsupportedChain):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &assetUnavailable):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &quoteExpired):
		s.writeError(w, http.StatusGone, err.Error())
	case errors.As(err, &partnerDown):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("Unhandled service error: %v", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response: %v", err)
	}
}
