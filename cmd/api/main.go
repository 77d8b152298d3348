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

	firebase "firebase.google.com/go/v4"

	"github.com/GoSim-25-26J-441/property-listing-backend/config"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/auth"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/reconcile"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	service.SetLogLevel(cfg.App.LogLevel)

	flushSentry, err := bootstrap.InitSentry(&cfg.App)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer flushSentry()

	ctx := context.Background()

	var app *firebase.App
	if bootstrap.NeedsFirebase(cfg) {
		app, err = auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	verifier, err := bootstrap.NewVerifier(ctx, cfg, app)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, app)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()
	log.Printf("document store: %s", cfg.Store.Backend)

	if cfg.Reconcile.Schedule != "" {
		scheduler := reconcile.NewScheduler(reconcile.New(store))
		if err := scheduler.Start(cfg.Reconcile.Schedule); err != nil {
			log.Fatalf("%v", err)
		}
		defer scheduler.Stop()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Store:          store,
		Verifier:       verifier,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
