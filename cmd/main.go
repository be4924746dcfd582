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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_business_bookings"
	getBusinessSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_business_settings"
	getNextAvailableHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_next_available"
	updateBookingStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking_status"
	updateBusinessSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_business_settings"
	updatePaymentStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_payment_status"
	validateBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	servicesRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/services"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	timeoffRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/timeoff"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/permissions"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	settingsService "github.com/m04kA/SMC-SchedulingService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	getNextAvailableUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_next_available"
	validateBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	// .env необязателен, переменные окружения могут прийти из оркестратора
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: при выключенных nil-коллектор, все методы безопасны
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, metricsCollector)
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	servicesRepository := servicesRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	timeoffRepository := timeoffRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сервис прав доступа
	permissionsClient := permissions.NewClient(
		cfg.PermissionsService.URL,
		time.Duration(cfg.PermissionsService.Timeout)*time.Second,
		log,
	)
	log.Info("Permissions client initialized (url=%s, timeout=%ds)",
		cfg.PermissionsService.URL, cfg.PermissionsService.Timeout)

	// Сервисы
	scheduleSvc := scheduleService.NewService(
		servicesRepository,
		settingsRepository,
		bookingRepository,
		timeoffRepository,
		time.Duration(cfg.Engine.FetchTimeoutSeconds)*time.Second,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, permissionsClient, log)
	settingsSvc := settingsService.NewService(settingsRepository, permissionsClient, log)

	engineOptions := availability.Options{
		StepMinutes:   cfg.Engine.SlotStepMinutes,
		EnforceBuffer: cfg.Engine.EnforceBuffer,
	}
	log.Info("Availability engine: step=%dmin, enforce_buffer=%t, fetch_timeout=%ds",
		engineOptions.StepMinutes, engineOptions.EnforceBuffer, cfg.Engine.FetchTimeoutSeconds)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleSvc,
		permissionsClient,
		metricsCollector,
		engineOptions,
		log,
	)
	validateBookingUseCase := validateBookingUC.NewUseCase(scheduleSvc, metricsCollector, engineOptions, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleSvc,
		permissionsClient,
		txMgr,
		metricsCollector,
		engineOptions,
		log,
	)
	getNextAvailableUseCase := getNextAvailableUC.NewUseCase(scheduleSvc, log)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getNextAvailable := getNextAvailableHandler.NewHandler(getNextAvailableUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessSettings := getBusinessSettingsHandler.NewHandler(settingsSvc, log)
	updateBusinessSettings := updateBusinessSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (виджет бронирования, без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

		var limiter middleware.Limiter
		if cfg.Redis.Enabled {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := redisClient.Ping(pingCtx).Err(); err != nil {
				log.Warn("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
			}
			cancel()
			limiter = middleware.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, window)
			log.Info("Redis rate limiter enabled (addr=%s, %d req / %ds, fail_open=%t)",
				cfg.Redis.Addr, cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds, cfg.RateLimit.FailOpen)
		} else {
			limiter = middleware.NewLocalLimiter(cfg.RateLimit.Requests, window)
			log.Info("Local rate limiter enabled (%d req / %ds)", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
		}
		public.Use(middleware.RateLimit(limiter, cfg.RateLimit.FailOpen, log))
	}

	// OPTIONS нужен, чтобы preflight дошел до CORS middleware
	public.HandleFunc("/businesses/{businessId}/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet, http.MethodOptions)
	public.HandleFunc("/businesses/{businessId}/bookings/validate",
		validateBooking.Handle).Methods(http.MethodPost, http.MethodOptions)
	public.HandleFunc("/businesses/{businessId}/next-available",
		getNextAvailable.Handle).Methods(http.MethodGet, http.MethodOptions)
	public.HandleFunc("/businesses/{businessId}/bookings",
		createBooking.Handle).Methods(http.MethodPost, http.MethodOptions)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сотрудники бизнеса ---
	protected.HandleFunc("/businesses/{businessId}/staff/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/staff/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment-status", updatePaymentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// --- Настройки бизнеса ---
	protected.HandleFunc("/businesses/{businessId}/settings", getBusinessSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/settings", updateBusinessSettings.Handle).Methods(http.MethodPut)

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

	close(stopMetricsCh)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
