package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feeding_notification_bot/internal/app"
	"feeding_notification_bot/internal/infra/config"
	idb "feeding_notification_bot/internal/infra/database"
	"feeding_notification_bot/internal/infra/logger"
	"feeding_notification_bot/internal/infra/scheduler"
	"feeding_notification_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get().WithField("component", "main")
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, PollInterval: %s, Timezone: %s",
		cfg.LogLevel, cfg.Environment, cfg.PollInterval, cfg.ScheduleTZ)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories
	ownerRepo := idb.NewPostgresOwnerRepository(db)
	animalRepo := idb.NewPostgresAnimalRepository(db)
	foodRepo := idb.NewPostgresFoodRepository(db)
	feedLogRepo := idb.NewPostgresFeedLogRepository(db)
	scheduleRepo := idb.NewPostgresScheduleRepository(db)
	notificationRepo := idb.NewPostgresNotificationRepository(db)
	log.Info("Repositories initialized.")

	// Initialize the Telegram bot if a token is configured. Without one the
	// engine still runs; notifications land in the inbox only.
	var bot *telebot.Bot
	var tgClient *telegram.TelebotAdapter
	if cfg.TelegramToken != "" {
		pref := telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) { // Global error handler
				entry := logger.Get().WithField("component", "telebot").WithError(err)
				if c != nil && c.Sender() != nil {
					entry = entry.WithField("sender_id", c.Sender().ID)
				}
				entry.Error("Telegram handler error")
			},
		}
		bot, err = telebot.NewBot(pref)
		if err != nil {
			log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
		}
		tgClient = telegram.NewTelebotAdapter(bot, cfg.TelegramRate)
		log.Info("Telegram client initialized.")
	} else {
		log.Warn("TELEGRAM_TOKEN not set; running with inbox-only notification delivery.")
	}

	// Initialize Services
	careLogger := logger.Get().WithField("component", "care_service")
	careService := app.NewCareService(animalRepo, foodRepo, feedLogRepo, scheduleRepo, careLogger)

	feedingLogger := logger.Get().WithField("component", "feeding_service")
	var feedingService app.FeedingService
	if tgClient != nil {
		feedingService = app.NewFeedingService(scheduleRepo, animalRepo, ownerRepo, notificationRepo, tgClient, cfg.ScheduleTZ, feedingLogger)
	} else {
		feedingService = app.NewFeedingService(scheduleRepo, animalRepo, ownerRepo, notificationRepo, nil, cfg.ScheduleTZ, feedingLogger)
	}
	log.Info("Services initialized.")

	// Initialize and start the FeedingPoller. The poller is owned by this
	// lifecycle: it is constructed and started here and stopped on shutdown,
	// never as a side effect of package initialization.
	pollerLogger := logger.Get().WithField("component", "feeding_poller")
	feedingPoller := scheduler.NewFeedingPoller(feedingService, pollerLogger, cfg.PollInterval, cfg.ScheduleTZ)
	if err := feedingPoller.Start(); err != nil {
		log.Fatalf("FATAL: Could not start feeding poller: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if bot != nil {
		handlersLogger := logger.Get().WithField("component", "telegram_handlers")
		telegram.RegisterOwnerHandlers(ctx, bot, ownerRepo, notificationRepo, animalRepo, foodRepo, scheduleRepo, careService, handlersLogger)
		log.Info("Owner command handlers registered.")

		// Start bot in a goroutine so it doesn't block graceful shutdown handling
		go bot.Start()
	}

	log.Info("Application setup complete. Poller is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	feedingPoller.Stop()
	if bot != nil {
		bot.Stop()
	}
	// db.Close() is handled by defer
	log.Info("Application shut down gracefully.")
}
