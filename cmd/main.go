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
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/cancel_reservation"
	getAvailabilityHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/get_availability"
	getFacilityReservationsHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/get_facility_reservations"
	getReservationHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/get_schedule"
	getUserReservationsHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/get_user_reservations"
	payReservationHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/pay_reservation"
	removePricingIntervalHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/remove_pricing_interval"
	setWorkingHoursHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/set_working_hours"
	submitBookingHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/submit_booking"
	upsertPricingIntervalHandler "github.com/Radi03825/PlaySpot-sub000/internal/api/handlers/upsert_pricing_interval"
	"github.com/Radi03825/PlaySpot-sub000/internal/api/middleware"
	"github.com/Radi03825/PlaySpot-sub000/internal/config"
	scheduleCache "github.com/Radi03825/PlaySpot-sub000/internal/infra/cache/schedule"
	"github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/memory"
	reservationRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/reservation"
	scheduleRepo "github.com/Radi03825/PlaySpot-sub000/internal/infra/storage/schedule"
	facilityServiceClient "github.com/Radi03825/PlaySpot-sub000/internal/integrations/facilityservice"
	reservationsService "github.com/Radi03825/PlaySpot-sub000/internal/service/reservations"
	scheduleService "github.com/Radi03825/PlaySpot-sub000/internal/service/schedule"
	getAvailabilityUC "github.com/Radi03825/PlaySpot-sub000/internal/usecase/get_availability"
	submitBookingUC "github.com/Radi03825/PlaySpot-sub000/internal/usecase/submit_booking"
	"github.com/Radi03825/PlaySpot-sub000/pkg/dbmetrics"
	"github.com/Radi03825/PlaySpot-sub000/pkg/logger"
	"github.com/Radi03825/PlaySpot-sub000/pkg/metrics"
	"github.com/Radi03825/PlaySpot-sub000/pkg/txmanager"
)

// reservationStore хранилище бронирований, общее для use cases и сервиса
type reservationStore interface {
	submitBookingUC.ReservationRepository
	getAvailabilityUC.ReservationRepository
	reservationsService.ReservationRepository
}

// txManager транзакции postgres или memory
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting PlaySpot booking service...")

	bookingLocation, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		reservations reservationStore
		schedules    scheduleCache.Store
		txMgr        txManager
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		reservations, schedules, txMgr = store, store, store
		log.Warn("Using in-memory storage, data will be lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// Без метрик обёртка только пробрасывает запросы
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		reservations = reservationRepo.NewRepository(wrappedDB)
		schedules = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Кэш расписаний (без Redis декоратор прозрачен)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, schedule cache disabled: %v", cfg.Redis.Addr, err)
			redisClient = nil
		} else {
			log.Info("Schedule cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.ScheduleTTL)
		}
		cancel()
	}
	cachedSchedules := scheduleCache.NewCachedStore(
		schedules,
		redisClient,
		cfg.Redis.ScheduleTTLDuration(),
		metricsCollector,
		log,
	)

	// Инициализируем интеграционных клиентов
	facilityClient := facilityServiceClient.NewClient(
		cfg.FacilityService.URL,
		time.Duration(cfg.FacilityService.Timeout)*time.Second,
		log,
	).WithDefaultGranularity(cfg.Booking.DefaultGranularityMinutes)
	log.Info("Integration clients initialized (FacilityService=%s timeout=%ds)",
		cfg.FacilityService.URL, cfg.FacilityService.Timeout)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		schedules,
		cachedSchedules,
		facilityClient,
		txMgr,
		cfg.Booking.InitialPricePerHour,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservations,
		facilityClient,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservations,
		cachedSchedules,
		facilityClient,
		bookingLocation,
		cfg.Booking.MaxRangeDays,
		log,
	)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		reservations,
		schedules,
		facilityClient,
		txMgr,
		metricsCollector,
		bookingLocation,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	setWorkingHours := setWorkingHoursHandler.NewHandler(scheduleSvc, log)
	upsertPricingInterval := upsertPricingIntervalHandler.NewHandler(scheduleSvc, log)
	removePricingInterval := removePricingIntervalHandler.NewHandler(scheduleSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	payReservation := payReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getFacilityReservations := getFacilityReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты объекта по датам
	api.HandleFunc("/facilities/{facilityId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Часы работы и тарифная сетка
	api.HandleFunc("/facilities/{facilityId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	var submit http.Handler = http.HandlerFunc(submitBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		submit = limiter.Middleware(submit)
		log.Info("Booking rate limit enabled (%d req/min, burst=%d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/facilities/{facilityId}/bookings", submit).Methods(http.MethodPost)

	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/pay", payReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление объектом (для владельцев) ---
	protected.HandleFunc("/facilities/{facilityId}/reservations", getFacilityReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/facilities/{facilityId}/schedule/{dayType}/working-hours",
		setWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/facilities/{facilityId}/schedule/{dayType}/pricing",
		upsertPricingInterval.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/facilities/{facilityId}/schedule/{dayType}/pricing/{start}",
		removePricingInterval.Handle).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
