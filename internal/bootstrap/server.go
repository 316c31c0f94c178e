package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StartHTTPServer serves the API and blocks until SIGINT/SIGTERM, then
// drains in-flight requests within ShutdownTimeout. The shutdown is
// recorded through the audit sink before draining begins.
func StartHTTPServer(router *gin.Engine, cfg ServerConfig, audit AuditSink) {
	drain := cfg.ShutdownTimeout
	if drain <= 0 {
		drain = 10 * time.Second
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		zap.L().Info("http server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	audit.Record(context.Background(), AuditEntry{
		Event:   "server.shutdown",
		Message: "shutdown signal received, draining requests",
		Details: map[string]any{
			"signal":        sig.String(),
			"drain_timeout": drain.String(),
		},
		OccurredAt: time.Now().UTC(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zap.L().Error("drain timed out, closing", zap.Error(err))
		return
	}
	zap.L().Info("http server drained")
}
