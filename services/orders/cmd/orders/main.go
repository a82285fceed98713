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

	orderscfg "github.com/compras-io/compras/services/orders/internal/config"
	"github.com/compras-io/compras/services/orders/internal/httpserver"
	"github.com/compras-io/compras/services/orders/internal/models"
	"github.com/compras-io/compras/services/orders/internal/repo"
	"github.com/compras-io/compras/services/orders/internal/service"
)

func main() {
	if err := godotenv.Load("services/orders/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := orderscfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(&models.PurchaseOrder{}, &models.OrderLine{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	store := &repo.GormStore{DB: db}
	svc := &service.OrderService{Store: store}
	handler := &httpserver.OrderHTTP{Svc: svc, Producer: producer}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{OrderHandler: handler})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("orders listening on %s", srv.Addr)
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

	log.Println("orders stopped")
}
