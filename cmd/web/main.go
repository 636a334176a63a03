package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wingscafe/inventory_client/internal/apiclient"
	"github.com/wingscafe/inventory_client/internal/config"
	"github.com/wingscafe/inventory_client/internal/handlers"
	"github.com/wingscafe/inventory_client/internal/inflight"
	"github.com/wingscafe/inventory_client/internal/localstore"
	"github.com/wingscafe/inventory_client/internal/logging"
	"github.com/wingscafe/inventory_client/internal/session"
	httpserver "github.com/wingscafe/inventory_client/internal/transport/http"
	"github.com/wingscafe/inventory_client/internal/web"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	store, err := localstore.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("local store init error: %v", err)
	}

	sessions, err := session.New(store)
	if err != nil {
		log.Fatalf("session init error: %v", err)
	}

	api := apiclient.New(cfg.APIBaseURL)
	guard := inflight.New()

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("template error: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestMiddleware(logger))

	deps := httpserver.Deps{
		Sessions:         sessions,
		AuthHandler:      &handlers.AuthHandler{Sessions: sessions},
		DashboardHandler: &handlers.DashboardHandler{API: api, Store: store, Sessions: sessions, APIBase: cfg.APIBaseURL},
		ProductHandler:   &handlers.ProductHandler{API: api, Store: store, Sessions: sessions, Guard: guard, APIBase: cfg.APIBaseURL},
		UserHandler:      &handlers.UserHandler{API: api, Sessions: sessions},
		ChartHandler:     &handlers.ChartHandler{API: api, Sessions: sessions},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	logger.Info("started", "addr", cfg.ListenAddr, "api", cfg.APIBaseURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := store.Close(); err != nil {
		log.Printf("store close error: %v", err)
	}

	log.Println("shutdown complete")
}
