package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	getAvailableSlotsHandler "github.com/trillium/massage-availability/internal/api/handlers/get_available_slots"
	getSlugConfigHandler "github.com/trillium/massage-availability/internal/api/handlers/get_slug_config"
	updateSlugConfigHandler "github.com/trillium/massage-availability/internal/api/handlers/update_slug_config"
	"github.com/trillium/massage-availability/internal/api/middleware"
	"github.com/trillium/massage-availability/internal/config"
	busyCache "github.com/trillium/massage-availability/internal/infra/cache/busy"
	"github.com/trillium/massage-availability/internal/infra/storage/database"
	slugConfigRepo "github.com/trillium/massage-availability/internal/infra/storage/slugconfig"
	"github.com/trillium/massage-availability/internal/integrations/gcal"
	"github.com/trillium/massage-availability/internal/service/slugconfig"
	getAvailableSlotsUC "github.com/trillium/massage-availability/internal/usecase/get_available_slots"
	"github.com/trillium/massage-availability/pkg/dbmetrics"
	"github.com/trillium/massage-availability/pkg/logger"
	"github.com/trillium/massage-availability/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting massage-availability...")
	log.Info("Configuration loaded from %s", *configPath)

	schedule, err := cfg.Schedule.Build()
	if err != nil {
		log.Fatal("Invalid schedule: %v", err)
	}

	ctx := context.Background()
	stopCh := make(chan struct{})

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных и применяем миграции
	db, err := database.Open(ctx, cfg.Database.DSN(), database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозиторий конфигураций слагов (с метриками или без)
	var configRepository *slugConfigRepo.Repository
	if cfg.Metrics.Enabled {
		configRepository = slugConfigRepo.NewRepository(dbmetrics.WrapWithDefault(db, metricsCollector, stopCh))
		log.Info("Database metrics collection started")
	} else {
		configRepository = slugConfigRepo.NewRepository(db)
	}

	// Google Calendar
	calendarClient, err := gcal.NewClient(ctx, gcal.Options{
		CredentialsFile:     cfg.Calendar.CredentialsFile,
		BusyCalendarIDs:     cfg.Calendar.BusyCalendarIDs,
		ContainerCalendarID: cfg.Calendar.ContainerCalendarID,
		Timeout:             time.Duration(cfg.Calendar.Timeout) * time.Second,
		Location:            schedule.Location,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize calendar client: %v", err)
	}
	log.Info("Calendar client initialized (calendars=%v, timeout=%ds)",
		cfg.Calendar.BusyCalendarIDs, cfg.Calendar.Timeout)

	var calendarProvider getAvailableSlotsUC.CalendarProvider = calendarClient

	// Кэш занятости в Redis (если включен)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis is unreachable, cache will fall through to calendar: %v", err)
		}
		calendarProvider = busyCache.NewCache(
			calendarClient,
			rdb,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Calendar cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Инициализируем сервисы
	configSvc := slugconfig.NewService(configRepository, log)

	// Инициализируем use cases
	ucOpts := []getAvailableSlotsUC.Option{}
	if metricsCollector != nil {
		ucOpts = append(ucOpts, getAvailableSlotsUC.WithOffersObserver(metricsCollector))
	}
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		configSvc,
		calendarProvider,
		schedule,
		cfg.Schedule.RangeDays,
		log,
		ucOpts...,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, schedule.Location, log)
	getSlugConfig := getSlugConfigHandler.NewHandler(configSvc, log)
	updateSlugConfig := updateSlugConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.DetectAdmin(cfg.Admin.Token))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, 10*time.Minute, log)
		go limiter.RunCleanup(time.Minute, stopCh)
		api.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Доступное время для записи (переопределения leadTime, promoEndDate,
	// eventContainer принимаются только с admin token)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Действующая конфигурация слага
	api.HandleFunc("/slugs/{slug}/config", getSlugConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <admin token>)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))

	admin.HandleFunc("/slugs/{slug}/config", updateSlugConfig.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (метрики пула, очистка лимитеров)
	close(stopCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
