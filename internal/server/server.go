// Package server exposes the intelligence pipeline over a small JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/growthdesk/clinic-intel/internal/competitor"
	"github.com/growthdesk/clinic-intel/internal/config"
	"github.com/growthdesk/clinic-intel/internal/model"
	"github.com/growthdesk/clinic-intel/internal/normalizer"
	"github.com/growthdesk/clinic-intel/internal/signal"
	"github.com/growthdesk/clinic-intel/internal/store"
)

// Server wires the core packages behind HTTP handlers.
type Server struct {
	store      store.Store
	norm       *normalizer.Normalizer
	analyzer   *competitor.Analyzer
	classifier *signal.Classifier
	cfg        config.Config
}

// New builds a Server. The normalizer snapshot is taken once at startup;
// restart to pick up dictionary changes.
func New(st store.Store, norm *normalizer.Normalizer, cfg config.Config) *Server {
	return &Server{
		store:      st,
		norm:       norm,
		analyzer:   competitor.NewAnalyzer(st, cfg.Competitor.TrackedCategory, cfg.Competitor.RecencyYears),
		classifier: signal.NewClassifier(st),
		cfg:        cfg,
	}
}

// Router builds the chi router with CORS and rate limiting applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(rateLimit(rate.Limit(s.cfg.Server.RatePerSecond), s.cfg.Server.RateBurst))

	r.Get("/health", s.handleHealth)
	r.Post("/normalize", s.handleNormalize)
	r.Route("/entities/{id}", func(r chi.Router) {
		r.Get("/score", s.handleScores)
		r.Get("/competitors", s.handleCompetitors)
	})
	r.Post("/signals/classify", s.handleClassify)

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server: listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// rateLimit applies a process-wide token bucket. Burst absorbs short spikes;
// sustained overload gets 429s.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type normalizeRequest struct {
	Texts []string `json:"texts"`
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts is required")
		return
	}

	result := s.norm.NormalizeAll(r.Context(), req.Texts, s.cfg.Normalizer.Workers)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "id")
	scores, err := s.store.GetMatchScores(r.Context(), entityID)
	if err != nil {
		zap.L().Error("server: load scores", zap.String("entity_id", entityID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}
	if len(scores) == 0 {
		writeError(w, http.StatusNotFound, "no scores for entity")
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleCompetitors(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "id")

	radius := s.cfg.Competitor.RadiusKm
	if q := r.URL.Query().Get("radius"); q != "" {
		if _, err := fmt.Sscanf(q, "%f", &radius); err != nil || radius <= 0 {
			writeError(w, http.StatusBadRequest, "invalid radius")
			return
		}
	}

	result, err := s.analyzer.FindCompetitorsByID(r.Context(), entityID, radius, time.Now())
	if err != nil {
		zap.L().Error("server: competitor analysis", zap.String("entity_id", entityID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "competitor analysis failed")
		return
	}
	if result == nil {
		result = []model.CompetitorData{}
	}
	writeJSON(w, http.StatusOK, result)
}

type classifyRequest struct {
	ProductID string                  `json:"product_id"`
	Rules     []model.SignalRule      `json:"rules"`
	Changes   []model.EquipmentChange `json:"changes"`
}

type classifyResponse struct {
	Signals  []model.SalesSignal `json:"signals"`
	Degraded bool                `json:"degraded"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	signals, out := s.classifier.Classify(r.Context(), req.Changes, req.ProductID, req.Rules)
	if signals == nil {
		signals = []model.SalesSignal{}
	}
	writeJSON(w, http.StatusOK, classifyResponse{Signals: signals, Degraded: out.Degraded})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
