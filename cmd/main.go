package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	getConnectionHandler "github.com/m04kA/SMC-SlotEngine/internal/api/handlers/get_connection"
	getGridHandler "github.com/m04kA/SMC-SlotEngine/internal/api/handlers/get_grid"
	getHandoffsHandler "github.com/m04kA/SMC-SlotEngine/internal/api/handlers/get_handoffs"
	loadWeekHandler "github.com/m04kA/SMC-SlotEngine/internal/api/handlers/load_week"
	removeSlotHandler "github.com/m04kA/SMC-SlotEngine/internal/api/handlers/remove_slot"
	submitBookingHandler "github.com/m04kA/SMC-SlotEngine/internal/api/handlers/submit_booking"
	toggleSlotHandler "github.com/m04kA/SMC-SlotEngine/internal/api/handlers/toggle_slot"
	"github.com/m04kA/SMC-SlotEngine/internal/api/middleware"
	"github.com/m04kA/SMC-SlotEngine/internal/config"
	"github.com/m04kA/SMC-SlotEngine/internal/infra/livechannel"
	handoffRepo "github.com/m04kA/SMC-SlotEngine/internal/infra/storage/handoff"
	"github.com/m04kA/SMC-SlotEngine/internal/infra/weekcache"
	branchServiceClient "github.com/m04kA/SMC-SlotEngine/internal/integrations/branchservice"
	reservationServiceClient "github.com/m04kA/SMC-SlotEngine/internal/integrations/reservationservice"
	engineService "github.com/m04kA/SMC-SlotEngine/internal/service/engine"
	loadWeekUC "github.com/m04kA/SMC-SlotEngine/internal/usecase/load_week"
	submitBookingUC "github.com/m04kA/SMC-SlotEngine/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SlotEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotEngine/pkg/logger"
	"github.com/m04kA/SMC-SlotEngine/pkg/metrics"
	"github.com/m04kA/SMC-SlotEngine/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SlotEngine/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-SlotEngine...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (журнал передач резерваций в оплату)
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	branchClient := branchServiceClient.NewClient(
		cfg.BranchService.URL,
		time.Duration(cfg.BranchService.Timeout)*time.Second,
		log,
	)
	reservationClient := reservationServiceClient.NewClient(
		cfg.ReservationService.URL,
		time.Duration(cfg.ReservationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (BranchService=%s timeout=%ds, ReservationService=%s timeout=%ds)",
		cfg.BranchService.URL, cfg.BranchService.Timeout,
		cfg.ReservationService.URL, cfg.ReservationService.Timeout)

	// Недельный кэш занятых слотов
	var cacheMetrics weekcache.MetricsRecorder
	if cfg.Metrics.Enabled {
		cacheMetrics = metricsCollector
	}
	cache := weekcache.New(branchClient, log, cacheMetrics)

	// Live-канал обновлений слотов (Redis pub/sub)
	transport := livechannel.NewRedisTransport(
		cfg.LiveChannel.RedisAddr,
		cfg.LiveChannel.RedisPassword,
		cfg.LiveChannel.RedisDB,
		cfg.LiveChannel.ChannelPrefix,
		log,
	)
	var channelMetrics livechannel.MetricsRecorder
	if cfg.Metrics.Enabled {
		channelMetrics = metricsCollector
	}
	channel := livechannel.New(
		transport,
		livechannel.ReconnectConfig{
			MaxAttempts: cfg.LiveChannel.ReconnectMaxAttempts,
			BaseDelay:   time.Duration(cfg.LiveChannel.ReconnectBaseDelayMS) * time.Millisecond,
			MaxDelay:    time.Duration(cfg.LiveChannel.ReconnectMaxDelayMS) * time.Millisecond,
		},
		log,
		channelMetrics,
	)
	if err := channel.Connect(); err != nil {
		// Канал сам уйдет в reconnect; сервис работает и без live-обновлений
		log.Warn("Live channel initial connect failed: %v", err)
	}

	// Инициализируем репозиторий журнала и transaction manager (с метриками или без)
	var (
		handoffRepository *handoffRepo.Repository
		txMgr             submitBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		handoffRepository = handoffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		handoffRepository = handoffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Оркестратор бронирования
	engineSvc := engineService.NewService(cache, channel, log)
	defer engineSvc.ReleaseSubscription()

	// Инициализируем use cases
	loadWeekUseCase := loadWeekUC.NewUseCase(
		branchClient,
		cache,
		engineSvc,
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		engineSvc,
		reservationClient,
		handoffRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	loadWeek := loadWeekHandler.NewHandler(loadWeekUseCase, log)
	getGrid := getGridHandler.NewHandler(engineSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(engineSvc, log)
	removeSlot := removeSlotHandler.NewHandler(engineSvc, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getConnection := getConnectionHandler.NewHandler(engineSvc, log)
	getHandoffs := getHandoffsHandler.NewHandler(handoffRepository, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; все операции движка требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// Загрузка недели филиала (полный снимок сетки)
	api.HandleFunc("/engine/week", loadWeek.Handle).Methods(http.MethodPut)

	// Снимок сетки или одной ячейки
	api.HandleFunc("/engine/grid", getGrid.Handle).Methods(http.MethodGet)

	// Выбор слота с ротацией
	api.HandleFunc("/engine/selection/toggle", toggleSlot.Handle).Methods(http.MethodPost)

	// Удаление слота из выбора
	api.HandleFunc("/engine/selection/{slotId}", removeSlot.Handle).Methods(http.MethodDelete)

	// Передача выбора в оплату
	api.HandleFunc("/engine/submit", submitBooking.Handle).Methods(http.MethodPost)

	// Состояние live-канала
	api.HandleFunc("/engine/connection", getConnection.Handle).Methods(http.MethodGet)

	// Журнал передач резерваций в оплату
	api.HandleFunc("/engine/handoffs", getHandoffs.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/engine/handoffs/{reservationId}", getHandoffs.HandleGet).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	// Останавливаем live-канал
	if err := channel.Shutdown(shutdownCtx); err != nil {
		log.Error("Live channel forced to shutdown: %v", err)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
