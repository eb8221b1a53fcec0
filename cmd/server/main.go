package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountshandler "sangamsetu/internal/accounts/handler"
	accountsmetrics "sangamsetu/internal/accounts/metrics"
	accountsservice "sangamsetu/internal/accounts/service"
	accountsstore "sangamsetu/internal/accounts/store"
	"sangamsetu/internal/accounts/store/revocation"
	"sangamsetu/internal/accounts/token"
	caseshandler "sangamsetu/internal/cases/handler"
	casesmetrics "sangamsetu/internal/cases/metrics"
	casesservice "sangamsetu/internal/cases/service"
	casesstore "sangamsetu/internal/cases/store"
	"sangamsetu/internal/platform/config"
	"sangamsetu/internal/platform/httpserver"
	"sangamsetu/internal/platform/logger"
	"sangamsetu/internal/platform/middleware"
	"sangamsetu/internal/platform/postgres"
	platformredis "sangamsetu/internal/platform/redis"
	httptransport "sangamsetu/internal/transport/http"
)

// main wires configuration, storage, services, and the HTTP router. Business
// logic lives in the internal service packages; main only assembles them.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err.Error())
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	tokenService := token.NewService(cfg.JWTSigningKey, "sangamsetu", "sangamsetu")

	var userStore accountsservice.UserStore
	var caseStore casesservice.Store
	var caseTx casesservice.StoreTx
	if db != nil {
		userStore = accountsstore.NewPostgres(db)
		caseStore = casesstore.NewPostgres(db)
		caseTx = newCasesPostgresTx(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		userStore = accountsstore.NewInMemory()
		caseStore = casesstore.NewInMemory()
	}

	var revoker accountsservice.TokenRevoker
	var revocationChecker middleware.TokenRevocationChecker
	if redisClient != nil {
		trl := revocation.NewRedisTRL(redisClient.Client)
		revoker, revocationChecker = trl, trl
	} else {
		log.Warn("REDIS_URL not set, using in-memory token revocation list")
		trl := revocation.NewMemoryTRL()
		revoker, revocationChecker = trl, trl
	}

	accountsSvc := accountsservice.NewService(userStore, tokenService, revoker, accountsmetrics.New(), cfg.AccessTokenTTL)
	accountsHandler := accountshandler.New(accountsSvc, tokenService, revocationChecker, log)

	caseOpts := []casesservice.Option{
		casesservice.WithMetrics(casesmetrics.New()),
		casesservice.WithLogger(log),
	}
	if caseTx != nil {
		caseOpts = append(caseOpts, casesservice.WithTx(caseTx))
	}
	casesSvc := casesservice.NewService(caseStore, caseOpts...)
	casesHandler := caseshandler.New(casesSvc, tokenService, revocationChecker, log)

	router := httptransport.NewRouter(accountsHandler, casesHandler, log)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting sangamsetu", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
