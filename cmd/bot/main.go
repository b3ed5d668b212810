package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/praktikum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Environment is not properly set: %v", err)
	}
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Chat ID: %d", cfg.LogLevel, cfg.Environment, cfg.TelegramChatID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Telegram Bot
	bot, err := telegram.NewBot(ctx, cfg.TelegramToken, cfg.TelegramAPIURL, cfg.HTTPTimeout, log)
	if err != nil {
		log.Fatalf("Could not create Telegram bot: %v", err)
	}
	telegramClient := telegram.NewTelebotAdapter(bot, cfg.TelegramRate)
	notifier := app.NewChatNotifier(telegramClient, cfg.TelegramChatID, log)
	log.Info("Telegram notifier initialized.")

	fetcher := praktikum.New(cfg.PraktikumAPIURL, cfg.PraktikumToken, cfg.HTTPTimeout, log)

	pollScheduler, err := scheduler.NewPollScheduler(cfg.PollSchedule, cfg.RetryDelay, log)
	if err != nil {
		log.Fatalf("Could not create poll scheduler: %v", err)
	}

	poller := app.NewHomeworkPoller(fetcher, app.NewStatusParser(log), notifier, pollScheduler, log).
		WithPollStep(pollScheduler.Interval())

	// Cancellation is observed at the next sleep boundary or in-flight request.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down application...")
		cancel()
	}()

	log.Infof("Application setup complete. Polling %s on schedule %q", cfg.PraktikumAPIURL, cfg.PollSchedule)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Poller stopped: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
