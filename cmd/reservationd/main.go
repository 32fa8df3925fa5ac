package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/campus-reservations/internal/application"
	"github.com/example/campus-reservations/internal/config"
	httptransport "github.com/example/campus-reservations/internal/http"
	"github.com/example/campus-reservations/internal/identity"
	"github.com/example/campus-reservations/internal/notify"
	"github.com/example/campus-reservations/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(ctx, cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	var notifier notify.Notifier
	if cfg.AMQPURL != "" {
		publisher, err := notify.NewPublisher(cfg.AMQPURL, cfg.NotifyExchange)
		if err != nil {
			logger.Error("failed to connect to message broker", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := publisher.Close(); cerr != nil {
				logger.Error("failed to close message broker connection", "error", cerr)
			}
		}()
		notifier = publisher
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	idGenerator := uuid.NewString
	now := time.Now
	locks := application.NewRoomLocks()

	bookingService := application.NewBookingService(storage, cfg.TermCalendar, notifier, locks, idGenerator, now, logger)
	scheduleService := application.NewScheduleService(storage, cfg.TermCalendar, notifier, locks, idGenerator, now, logger)

	verifier := identity.NewVerifier(cfg.TokenSecret)

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Bookings:     httptransport.NewBookingHandler(bookingService, logger),
		Schedules:    httptransport.NewScheduleHandler(scheduleService, logger),
		Authenticate: httptransport.RequireToken(verifier, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("reservation API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
