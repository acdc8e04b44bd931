package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friendgraph/internal/common"
	"friendgraph/internal/wire"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	app, cleanup, err := wire.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	if err := run(app); err != nil {
		app.Logger.Error("server stopped with error", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func run(app *wire.Application) error {
	cfg := app.Config
	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        common.CORSMiddleware(setupRouter(app)),
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("store", cfg.Store.Backend),
			zap.String("environment", cfg.Server.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		app.Logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	app.Logger.Info("server gracefully stopped")
	return nil
}

func setupRouter(app *wire.Application) *mux.Router {
	router := mux.NewRouter()
	router.Use(common.RequestIDMiddleware)
	router.Use(common.LoggingMiddleware(app.Logger))
	router.Use(common.RecoveryMiddleware(app.Logger))

	api := router.PathPrefix("/api/v1").Subrouter()
	app.Handler.RegisterRoutes(api, common.AuthMiddleware(app.Tokens))
	return router
}
