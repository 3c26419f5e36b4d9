package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/gmsim/internal/api/ratings"
	"github.com/omarshaarawi/gmsim/internal/api/strength"
	"github.com/omarshaarawi/gmsim/internal/bot"
	"github.com/omarshaarawi/gmsim/internal/config"
	"github.com/omarshaarawi/gmsim/internal/events"
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/mcpserver"
	"github.com/omarshaarawi/gmsim/internal/montecarlo"
	"github.com/omarshaarawi/gmsim/internal/repository"
	"github.com/omarshaarawi/gmsim/internal/repository/memory"
	"github.com/omarshaarawi/gmsim/internal/repository/sqlite"
	"github.com/omarshaarawi/gmsim/internal/scheduler"
	"github.com/omarshaarawi/gmsim/internal/server"
	"github.com/omarshaarawi/gmsim/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	registry, err := league.DefaultRegistry()
	if err != nil {
		return err
	}

	repo := memory.NewRepository()

	var provider strength.Provider = strength.Static{}
	if cfg.Ratings.BaseURL != "" {
		provider = ratings.NewAPI(ratings.NewClient(cfg.Ratings))
		slog.Info("Using ratings service", "url", cfg.Ratings.BaseURL)
	}
	cached := strength.NewCached(provider, repo, cfg.Ratings.CacheTTL)

	var trades repository.TradeStore = repo
	if cfg.Store.SQLitePath != "" {
		store, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Error("Error closing trade store", "error", err)
			}
		}()
		trades = store
		slog.Info("Using sqlite trade store", "path", cfg.Store.SQLitePath)
	}

	projector := montecarlo.NewProjector(montecarlo.Config{
		MaxSimulations:   cfg.Engine.MaxSimulations,
		MinSimulations:   cfg.Engine.MinSimulations,
		Budget:           cfg.Engine.TrialBudget,
		Workers:          cfg.Engine.Workers,
		BustThreshold:    cfg.Engine.BustThreshold,
		SuccessThreshold: cfg.Engine.SuccessThreshold,
	})

	gm := service.NewGMService(registry, cached, trades, projector, cfg.Engine.DefaultSimulations)

	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Error("Error closing event publisher", "error", err)
			}
		}()
		gm.WithPublisher(publisher)
		slog.Info("Publishing events to kafka", "topic", cfg.Kafka.Topic)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sendMessage func(string) error
	var botWG sync.WaitGroup
	if cfg.TelegramBot.Token != "" {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, gm)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage
		botWG.Add(1)
		go func() {
			defer botWG.Done()
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	sched, err := scheduler.NewScheduler(gm, cfg.Audit, cached.Purge, sendMessage)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := server.New(gm, cfg.HTTP, mcpserver.Handler(mcpserver.New(gm)))
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.HTTP.Addr, "mcp", cfg.HTTP.MCPPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = httpServer.Shutdown(shutdownCtx)
	botWG.Wait()
	return err
}
