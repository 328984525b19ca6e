package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/matheustorresii/vitrine-sorocabana/internal/apiclient"
	"github.com/matheustorresii/vitrine-sorocabana/internal/config"
	"github.com/matheustorresii/vitrine-sorocabana/internal/db"
	"github.com/matheustorresii/vitrine-sorocabana/internal/live"
	"github.com/matheustorresii/vitrine-sorocabana/internal/metrics"
	"github.com/matheustorresii/vitrine-sorocabana/internal/middleware"
	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
	"github.com/matheustorresii/vitrine-sorocabana/internal/pages"
	"github.com/matheustorresii/vitrine-sorocabana/internal/server"
	"github.com/matheustorresii/vitrine-sorocabana/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log, err := cfg.Logger()
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := db.Open(ctx, cfg.StorageOptions())
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer storage.Close()

	seed, err := services.LoadSeedOrDefault(cfg.SeedFile)
	if err != nil {
		log.Fatalf("seed file: %v", err)
	}

	m := metrics.New()
	store, err := services.New(ctx,
		services.NewJSONStorage(storage, services.StorageKey),
		services.WithSeed(seed),
		services.WithLogger(log),
		services.WithRecorder(m.RecordMutation),
		services.WithObserver(func(items []models.Service) { m.SetServiceCount(len(items)) }),
	)
	if err != nil {
		log.Fatalf("services init error: %v", err)
	}
	m.SetServiceCount(len(store.Services()))

	hub := live.NewHub(store.Services, log)
	store.Subscribe(hub.Publish)
	go hub.Run(ctx)

	baseURL := apiclient.ResolveBaseURL(cfg.BaseURLOptions())
	client := apiclient.New(baseURL, apiclient.WithObserver(m.ObserveFetch))

	ph, err := pages.NewHandler(client, store, log)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	router := server.NewRouter(server.Deps{
		Pages:    ph,
		Services: services.NewHandler(store),
		Hub:      hub,
		Metrics:  m,
		Limiter:  middleware.NewRateLimiter(cfg.AdminRateLimit, cfg.AdminRateBurst, log),
		Log:      log,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":    cfg.Addr,
		"api":     baseURL,
		"storage": cfg.StorageDriver,
	}).Info("VitrineSorocabana portal listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
