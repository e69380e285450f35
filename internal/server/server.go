// Package server HTTP доступ к прогонам: здоровье, метрики, история и запуск сбора.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tempScraper/internal/app"
	"tempScraper/internal/database"
	"tempScraper/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ErrBusy прогон уже выполняется
var ErrBusy = errors.New("прогон уже выполняется")

// RunStore чтение истории прогонов
type RunStore interface {
	ListRuns(limit, offset int) ([]database.Run, error)
	GetRunByID(id uint) (*database.Run, error)
	GetExportsByRunID(runID uint) ([]database.RegionExport, error)
	GetChecksByRunID(runID uint) ([]database.CheckResult, error)
}

// ScrapeFunc выполняет один прогон сбора
type ScrapeFunc func(ctx context.Context) (*app.Report, error)

type Server struct {
	log      *logger.Zap
	repo     RunStore
	scrape   ScrapeFunc
	registry prometheus.Gatherer
	router   *chi.Mux

	mu      sync.Mutex
	running bool
}

// New repo может быть nil, тогда ручки истории отвечают 503
func New(log *logger.Zap, repo RunStore, scrape ScrapeFunc, registry prometheus.Gatherer) *Server {
	s := &Server{
		log:      log,
		repo:     repo,
		scrape:   scrape,
		registry: registry,
		router:   chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/scrape", s.handleScrape)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run слушает addr до отмены ctx
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Сервер запущен", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("Остановка сервера")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("HTTP",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	report, err := s.runExclusive(r.Context())
	if errors.Is(err, ErrBusy) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.Error("Прогон завершился ошибкой", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"output_dir":   report.OutputDir,
		"records":      len(report.Records),
		"rows_dropped": report.Stats.RowsDropped,
		"aggregate":    report.Aggregate,
		"regions":      report.RegionFiles,
	})
}

// runExclusive не допускает двух прогонов одновременно
func (s *Server) runExclusive(ctx context.Context) (*app.Report, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	return s.scrape(ctx)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history disabled"})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad limit"})
			return
		}
		limit = n
	}

	runs, err := s.repo.ListRuns(limit, 0)
	if err != nil {
		s.log.Error("db list runs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db error"})
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history disabled"})
		return
	}

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad id"})
		return
	}
	run, err := s.repo.GetRunByID(uint(id64))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	exports, err := s.repo.GetExportsByRunID(run.ID)
	if err != nil {
		s.log.Error("db get exports", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db error"})
		return
	}
	results, err := s.repo.GetChecksByRunID(run.ID)
	if err != nil {
		s.log.Error("db get checks", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run":     run,
		"exports": exports,
		"checks":  results,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
