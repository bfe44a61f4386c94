// Command rechunk-devserver serves and signs local chunks for development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rechunk/rechunk/internal/devserver"
	"github.com/rechunk/rechunk/internal/projectcfg"
)

func main() {
	port := flag.Int("port", devserver.DefaultPort, "listen port")
	dir := flag.String("dir", ".", "directory containing rechunk.json")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	cfg, err := projectcfg.Load(*dir)
	if err != nil {
		logger.Fatal("load project config", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           devserver.Handler(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dev server listening",
			zap.Int("port", *port),
			zap.String("project", cfg.Project),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}
}
