package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"libraryManagement/internal/config"
	"libraryManagement/internal/db"
	"libraryManagement/internal/httpapi"
	"libraryManagement/internal/lending"
	"libraryManagement/repository"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Info("configuration loaded", zap.Stringer("config", cfg))

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Warn("close db", zap.Error(err))
		}
	}()

	users := repository.NewUserRepository(d)
	books := repository.NewBookRepository(d)
	borrows := repository.NewBorrowRepository(d)
	returns := repository.NewReturnRepository(d)

	svc := lending.NewService(d, books, borrows, returns, lending.Config{
		LoanPeriodDays: cfg.Lending.LoanPeriodDays,
		LateFine:       cfg.Lending.LateFine,
	})

	srv := &httpapi.Server{
		Log:       logger,
		DB:        d,
		Users:     users,
		Books:     books,
		Borrows:   borrows,
		Returns:   returns,
		Lending:   svc,
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	}

	shutdown, err := httpapi.StartHTTP(cfg, srv)
	if err != nil {
		logger.Fatal("start http", zap.Error(err))
	}
	logger.Info("http server listening", zap.String("addr", cfg.HTTP.Address))

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
