package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"restaurant_api/internal/config"
	"restaurant_api/internal/handlers"
	"restaurant_api/internal/logging"
	authmw "restaurant_api/internal/middleware/auth"
	loggingmw "restaurant_api/internal/middleware/logging"
	"restaurant_api/internal/mykafka"
	"restaurant_api/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	prod := mykafka.NewProducer(cfg.KafkaBrokers)

	groupSvc := &service.GroupService{DB: db}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	principal := &authmw.PrincipalMiddleware{JWTSecret: cfg.JWTSecret, Groups: groupSvc}

	handlers.Register(e,
		&handlers.CatalogHandler{Svc: &service.CatalogService{DB: db}, Producer: prod},
		&handlers.CartHandler{Svc: &service.CartService{DB: db}, Producer: prod},
		&handlers.OrderHandler{Svc: &service.OrderService{DB: db}, Producer: prod},
		&handlers.GroupHandler{Svc: groupSvc},
		principal.JWT(), principal.LoadPrincipal,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
