package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/compras-io/compras/pkg/db"
	"github.com/compras-io/compras/pkg/events"
	"github.com/compras-io/compras/pkg/logging"
	loggingmw "github.com/compras-io/compras/pkg/middleware/logging"

	supplierscfg "github.com/compras-io/compras/services/suppliers/internal/config"
	"github.com/compras-io/compras/services/suppliers/internal/httpserver"
	"github.com/compras-io/compras/services/suppliers/internal/models"
	"github.com/compras-io/compras/services/suppliers/internal/repo"
	"github.com/compras-io/compras/services/suppliers/internal/service"
)

func main() {
	if err := godotenv.Load("services/suppliers/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := supplierscfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(&models.Supplier{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	svc := &service.SupplierService{Repo: &repo.GormRepo{DB: db}}
	handler := &httpserver.SupplierHTTP{Svc: svc, Producer: producer}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{SupplierHandler: handler})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("suppliers listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = producer.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("suppliers stopped")
}
