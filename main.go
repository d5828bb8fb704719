package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "travel/internal/config"
	intdb "travel/internal/db"
	router "travel/internal/http"
	h "travel/internal/http/handlers"
	"travel/internal/metrics"
	"travel/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	if err := utils.InitLogger(env.LogLevel, gin.Mode()); err != nil {
		panic(err)
	}
	defer utils.SyncLogger()
	log := utils.L()

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer intconfig.CloseDB()
	log.Info("connected to MySQL", zap.String("db", env.DBName))

	if env.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := intdb.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Fatal("schema bootstrap failed", zap.Error(err))
		}
	}
	if env.AuthEnabled && env.JWTSecret == "" {
		log.Fatal("AUTH_ENABLED requires JWT_SECRET")
	}

	m := metrics.New()
	h.SetDeps(h.Deps{
		DB:        db,
		Metrics:   m,
		JWTSecret: []byte(env.JWTSecret),
		JWTTTL:    env.JWTTTL,
	})

	if env.AuthEnabled && env.BootstrapAdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		created, err := h.AuthService("").EnsureAdmin(ctx, env.BootstrapAdminEmail, env.BootstrapAdminPassword)
		cancel()
		if err != nil {
			log.Fatal("admin bootstrap failed", zap.Error(err))
		}
		if created {
			log.Info("admin account created", zap.String("email", env.BootstrapAdminEmail))
		}
	}

	r := router.NewRouter(env, m)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
