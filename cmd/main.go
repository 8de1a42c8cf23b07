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
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	adjustCapacityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/adjust_capacity"
	applyShiftSettingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/apply_shift_settings"
	cancelReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_reservation"
	deleteRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_rule"
	getDayScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_day_schedule"
	getReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_reservation"
	getWeeklyAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_weekly_availability"
	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers/health"
	listRulesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_rules"
	listStylistReservationsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_stylist_reservations"
	updateReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_reservation"
	updateReservationStatusHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_reservation_status"
	upsertRuleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/upsert_rule"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/calendar"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	rulesRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rules"
	catalogServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	notificationServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-ScheduleService/internal/notify"
	reservationsService "github.com/m04kA/SMC-ScheduleService/internal/service/reservations"
	rulesService "github.com/m04kA/SMC-ScheduleService/internal/service/rules"
	adjustCapacityUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/adjust_capacity"
	applyShiftSettingsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_shift_settings"
	createReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
	getDayScheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_schedule"
	getWeeklyAvailabilityUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_weekly_availability"
	updateReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/redislock"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

// version проставляется при сборке через -ldflags
var version = "dev"

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

	log.Info("Starting SMC-ScheduleService %s...", version)
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone: %v", err)
	}
	scheduleOpts, err := cfg.Schedule.Options()
	if err != nil {
		log.Fatal("Invalid schedule options: %v", err)
	}

	holidays, err := calendar.Load(cfg.Schedule.HolidaysFile)
	if err != nil {
		log.Fatal("Failed to load holidays calendar: %v", err)
	}
	log.Info("Holidays calendar loaded from %q", cfg.Schedule.HolidaysFile)

	// Инициализируем метрики (если включены). nil-коллектор безопасен.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Schedule.TxMaxRetries),
		txmanager.WithRetryObserver(metricsCollector),
	)

	// Распределенная блокировка дня мастера (опционально)
	var (
		locker      redislock.Locker = redislock.NopLocker{}
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = redislock.NewRedisLocker(redisClient, cfg.Redis.LockTTL(), cfg.Redis.LockWait())
		log.Info("Redis lock enabled (addr=%s, ttl=%s, wait=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL(), cfg.Redis.LockWait())
	}

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.Catalog.URL,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		log,
	)
	notificationClient := notificationServiceClient.NewClient(
		cfg.Notifications.URL,
		time.Duration(cfg.Notifications.Timeout)*time.Second,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, NotificationService=%s timeout=%ds)",
		cfg.Catalog.URL, cfg.Catalog.Timeout, cfg.Notifications.URL, cfg.Notifications.Timeout)

	// Пул отправки уведомлений
	notifyCtx, stopNotify := context.WithCancel(context.Background())
	notifier := notify.NewWorkerPool(
		cfg.Notifications.Workers,
		cfg.Notifications.QueueSize,
		notificationClient,
		time.Duration(cfg.Notifications.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	notifier.Start(notifyCtx)
	log.Info("Notification workers started (workers=%d, queue=%d)", cfg.Notifications.Workers, cfg.Notifications.QueueSize)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	rulesRepository := rulesRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		txMgr,
		notifier,
		log,
	)
	rulesSvc := rulesService.NewService(
		rulesRepository,
		cfg.Schedule.MaxCapacity,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		rulesRepository,
		catalogClient,
		holidays,
		txMgr,
		notifier,
		scheduleOpts,
		log,
	).WithLocker(locker).WithMetrics(metricsCollector).WithLocation(location)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		rulesRepository,
		catalogClient,
		holidays,
		txMgr,
		notifier,
		scheduleOpts,
		log,
	).WithLocker(locker).WithMetrics(metricsCollector).WithLocation(location)

	getWeeklyAvailabilityUseCase := getWeeklyAvailabilityUC.NewUseCase(
		reservationRepository,
		rulesRepository,
		catalogClient,
		holidays,
		scheduleOpts,
		log,
	).WithLocation(location)

	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		reservationRepository,
		rulesRepository,
		holidays,
		scheduleOpts,
		log,
	).WithLocation(location)

	adjustCapacityUseCase := adjustCapacityUC.NewUseCase(
		rulesRepository,
		holidays,
		txMgr,
		scheduleOpts,
		log,
	)

	applyShiftSettingsUseCase := applyShiftSettingsUC.NewUseCase(
		reservationRepository,
		rulesRepository,
		txMgr,
		cfg.Schedule.MaxCapacity,
		log,
	).WithMetrics(metricsCollector)

	// Инициализируем handlers
	getWeeklyAvailability := getWeeklyAvailabilityHandler.NewHandler(getWeeklyAvailabilityUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	adjustCapacity := adjustCapacityHandler.NewHandler(adjustCapacityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	listStylistReservations := listStylistReservationsHandler.NewHandler(reservationSvc, log)
	applyShiftSettings := applyShiftSettingsHandler.NewHandler(applyShiftSettingsUseCase, log)
	listRules := listRulesHandler.NewHandler(rulesSvc, log)
	upsertRule := upsertRuleHandler.NewHandler(rulesSvc, log)
	deleteRule := deleteRuleHandler.NewHandler(rulesSvc, log)

	checkers := []health.Checker{
		health.CheckFunc{DependencyName: "postgres", Fn: wrappedDB.PingContext},
	}
	if redisClient != nil {
		checkers = append(checkers, health.CheckFunc{
			DependencyName: "redis",
			Fn: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	}
	healthHandler := health.NewHandler(version, log, checkers...)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health/live", healthHandler.Live).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)))
		log.Info("Rate limit enabled for write requests (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Недельная доступность для клиентов
	var (
		availability      http.Handler = http.HandlerFunc(getWeeklyAvailability.Handle)
		availabilityCache *cache.Cache
	)
	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTL) * time.Second
		availabilityCache = cache.New(ttl, time.Duration(cfg.Cache.CleanupInterval)*time.Second)
		availability = middleware.Cache(availabilityCache, ttl)(availability)
		log.Info("Availability response cache enabled (ttl=%s)", ttl)
	}
	api.Handle("/stylists/{stylistId}/availability", availability).Methods(http.MethodGet)

	// Правила расписания мастера
	api.HandleFunc("/stylists/{stylistId}/rules", listRules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	if availabilityCache != nil {
		// Успешная запись сбрасывает закешированную доступность
		protected.Use(middleware.InvalidateCache(availabilityCache, "availability"))
	}

	// --- Брони ---
	protected.HandleFunc("/stylists/{stylistId}/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/stylists/{stylistId}/reservations", listStylistReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание мастера ---
	protected.HandleFunc("/stylists/{stylistId}/schedule", getDaySchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/stylists/{stylistId}/schedule/{date}/slots/{slot}/capacity",
		adjustCapacity.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/stylists/{stylistId}/shift-settings/{month}", applyShiftSettings.Handle).Methods(http.MethodPost)

	// --- Правила ---
	protected.HandleFunc("/stylists/{stylistId}/rules/{kind}", upsertRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/stylists/{stylistId}/rules/{kind}/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений из очереди
	stopNotify()
	notifier.Wait()
	log.Info("Notification workers stopped")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
