// internal/server/server.go

// Package server owns the two HTTP listeners: the public API server and the
// ops server carrying health, metrics and pprof.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cedars-leadgen/internal/common/config"
	"cedars-leadgen/internal/common/logger"
)

type Server struct {
	api    *http.Server
	ops    *http.Server
	cfg    config.ServerConfig
	logger logger.Logger
}

// New builds both servers. The API server deliberately has no write
// timeout: a scan stream legitimately stays open for minutes while the
// provider pages through results.
func New(cfg config.ServerConfig, h Handlers, log logger.Logger) *Server {
	api := &http.Server{
		Addr:        cfg.Address,
		Handler:     requestLogger(log, newRouter(h)),
		ReadTimeout: config.GetDuration(cfg.ReadTimeout),
	}

	opsMux := http.NewServeMux()
	opsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	opsMux.Handle("/metrics", promhttp.Handler())
	opsMux.Handle("/debug/pprof/", http.DefaultServeMux)

	ops := &http.Server{
		Addr:    cfg.OpsAddress,
		Handler: opsMux,
	}

	return &Server{
		api:    api,
		ops:    ops,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Start runs both listeners. Fatal listener errors land on errCh.
func (s *Server) Start(errCh chan<- error) {
	go func() {
		s.logger.Info("api server listening", map[string]interface{}{
			"address": s.api.Addr,
		})
		if err := s.api.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	go func() {
		s.logger.Info("ops server listening", map[string]interface{}{
			"address": s.ops.Addr,
		})
		if err := s.ops.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
}

// Shutdown drains both servers within the configured grace period. Open
// scan streams get that long to finish before the connection is cut.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(s.cfg.ShutdownTimeout))
	defer cancel()

	if err := s.ops.Shutdown(ctx); err != nil {
		s.logger.Warn("ops server shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return s.api.Shutdown(ctx)
}
