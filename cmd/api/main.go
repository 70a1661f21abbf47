package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthonycdp/autovision-project-sub001/internal/api"
	"github.com/anthonycdp/autovision-project-sub001/internal/infrastructure/config"
	mongodb "github.com/anthonycdp/autovision-project-sub001/internal/infrastructure/db/mongo"
	redisdb "github.com/anthonycdp/autovision-project-sub001/internal/infrastructure/db/redis"
	"github.com/anthonycdp/autovision-project-sub001/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        AutoVision API
// @version      1.0
// @description  Dealership inventory backend: session lifecycle, vehicle approval workflow, activity trail and sales dashboard.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	e, dispatcher := api.NewRouter(db, rdb, cfg, log)
	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	// Stop the activity workers only after in-flight requests have drained.
	cancel()

	log.Info().Msg("stopped")
}
