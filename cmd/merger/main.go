package main

import (
	"context"
	"flag"
	"leave-calendar/internal/config"
	"leave-calendar/internal/handler"
	"leave-calendar/internal/repository"
	"leave-calendar/internal/scheduler"
	"leave-calendar/internal/service"
	"leave-calendar/internal/telemetry"
	"leave-calendar/pkg/holidays"
	"leave-calendar/pkg/telegram"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	once := flag.Bool("once", false, "Run one merge pass and exit")
	flag.Parse()

	logrus.Info("Initializing config...")
	cfg := config.GetConfig()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logger := logrus.StandardLogger()
	logrus.Info("Config initialized...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := telemetry.Init(ctx, "leave-calendar-merger"); err != nil {
		logrus.WithError(err).Warn("Failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		telemetry.Shutdown(shutdownCtx)
	}()

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	eventRepo, err := repository.NewGormLeaveEventRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create leave event repository")
	}
	eventRepo.SetLogger(logger)

	holidayRepo, err := repository.NewGormHolidayRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create holiday repository")
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	holidayService := service.NewHolidayService(holidayRepo)
	if cfg.HolidaysFile != "" {
		count, err := holidayService.LoadFromFile(cfg.HolidaysFile, cfg.HolidayYears)
		if err != nil {
			logrus.WithError(err).Warn("Failed to load holidays file")
		} else {
			logrus.Infof("Loaded %d holidays from %s", count, cfg.HolidaysFile)
		}
	}

	var calendar *holidays.Calendar
	if cfg.MergeAdjacency == service.AdjacencyBusiness {
		calendar, err = holidayService.Calendar()
		if err != nil {
			logrus.WithError(err).Fatal("Failed to build holiday calendar")
		}
	}

	policy, err := service.ParseAdjacencyPolicy(cfg.MergeAdjacency, calendar)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid adjacency policy")
	}

	grouping := service.NewGroupingEngine(eventRepo, policy)
	grouping.SetLogger(logger)
	executor := service.NewMergeExecutor(eventRepo)
	executor.SetLogger(logger)
	mergeJob := service.NewMergeJob(grouping, executor)
	mergeJob.SetLogger(logger)

	metrics, err := telemetry.NewMergeMetrics(telemetry.Meter(""))
	if err != nil {
		logrus.WithError(err).Warn("Failed to create merge metrics")
	} else {
		mergeJob.SetRecorder(metrics)
	}

	var client *telegram.Client
	if cfg.TelegramEnabled() {
		client, err = telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
		if err != nil {
			logrus.Fatal("Failed to create Telegram client:", err)
		}
		logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)
		mergeJob.SetNotifier(telegram.NewSummaryNotifier(client.Bot, cfg.AdminChatID))
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logrus.WithError(err).Warnf("Unknown timezone %s, using local time", cfg.Timezone)
		location = time.Local
	}

	sched, err := scheduler.New(mergeJob, cfg.MergeCron, location, logger)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create merge scheduler")
	}

	if *once {
		if _, err := sched.RunNow(ctx); err != nil {
			logrus.WithError(err).Error("Merge pass failed")
			closeDB(sqlDB.Close)
			os.Exit(1)
		}
		closeDB(sqlDB.Close)
		return
	}

	if cfg.MergeOnStart {
		if _, err := sched.RunNow(ctx); err != nil {
			logrus.WithError(err).Error("Startup merge pass failed")
		}
	}

	sched.Start()

	if client != nil {
		botHandler := handler.NewHandler(client.Bot, mergeJob, holidayService, employeeRepo, cfg.AdminChatID)
		updates := client.Bot.GetUpdatesChan(client.UpdateConfig)
		go botHandler.HandleUpdates(updates)
	}

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	logrus.Info("Merge service started. Press Ctrl+C to stop.")
	<-stop

	if client != nil {
		client.Bot.StopReceivingUpdates()
	}

	// Ждем завершения текущего прохода
	<-sched.Stop().Done()

	closeDB(sqlDB.Close)
	logrus.Info("Merge service stopped gracefully")
}

func closeDB(closeFn func() error) {
	if err := closeFn(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}
}
