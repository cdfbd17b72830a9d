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

	cancelReservationHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/create_reservation"
	deleteBookingRuleHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/delete_booking_rule"
	getAvailabilityHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_availability"
	getBookingRuleHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_booking_rule"
	getFacilityHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_facility"
	getReservationHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_user_reservations"
	listBookingRulesHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/list_booking_rules"
	listReservationsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/list_reservations"
	searchBuildingsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/search_buildings"
	searchFacilitiesHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/search_facilities"
	updateBookingRuleHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/update_booking_rule"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/config"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	buildingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/building"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/reservation"
	ruleRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/rule"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	userServiceClient "github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	facilitiesService "github.com/m04kA/SMC-FacilityBooking/internal/service/facilities"
	reservationsService "github.com/m04kA/SMC-FacilityBooking/internal/service/reservations"
	rulesService "github.com/m04kA/SMC-FacilityBooking/internal/service/rules"
	createReservationUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/validate_reservation"
	"github.com/m04kA/SMC-FacilityBooking/internal/worker/completion"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

// eventPublisher издатель событий бронирований (RabbitMQ или no-op)
type eventPublisher interface {
	PublishReservationCreated(ctx context.Context, r *domain.Reservation) error
	PublishReservationCancelled(ctx context.Context, r *domain.Reservation) error
	Close() error
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

	log.Info("Starting SMC-FacilityBooking...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid campus time zone: %v", err)
	}

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics безопасен: все методы записи его проверяют
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

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithSerializableRetries(cfg.Booking.SerializationRetries))

	// Инициализируем интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Event publishing enabled (exchange=%s)", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	buildingRepository := buildingRepo.NewRepository(wrappedDB)
	facilityRepository := facilityRepo.NewRepository(wrappedDB)
	ruleRepository := ruleRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	facilitySvc := facilitiesService.NewService(facilityRepository, buildingRepository, log)
	ruleSvc := rulesService.NewService(ruleRepository, userClient, log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		userClient,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	validator := validate_reservation.NewValidator(ruleRepository, reservationRepository, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		facilityRepository,
		reservationRepository,
		userClient,
		validator,
		txMgr,
		publisher,
		metricsCollector,
		log,
		createReservationUC.WithNumberAttempts(cfg.Booking.BookingNumberAttempts),
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		facilityRepository,
		reservationRepository,
		location,
		cfg.Booking.SlotMinutes,
		log,
	)

	// Инициализируем handlers
	searchBuildings := searchBuildingsHandler.NewHandler(facilitySvc, log)
	searchFacilities := searchFacilitiesHandler.NewHandler(facilitySvc, log)
	getFacility := getFacilityHandler.NewHandler(facilitySvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listBookingRules := listBookingRulesHandler.NewHandler(ruleSvc, log)
	getBookingRule := getBookingRuleHandler.NewHandler(ruleSvc, log)
	updateBookingRule := updateBookingRuleHandler.NewHandler(ruleSvc, log)
	deleteBookingRule := deleteBookingRuleHandler.NewHandler(ruleSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог помещений
	api.HandleFunc("/buildings", searchBuildings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities", searchFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	api.HandleFunc("/facilities/{facilityId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Правила бронирования
	api.HandleFunc("/booking-rules", listBookingRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-rules/{facilityType}", getBookingRule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление правилами (для администраторов) ---
	protected.HandleFunc("/booking-rules/{facilityType}", updateBookingRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/booking-rules/{facilityType}", deleteBookingRule.Handle).Methods(http.MethodDelete)

	// Фоновое завершение прошедших бронирований
	workerCtx, stopWorker := context.WithCancel(context.Background())
	sweeper := completion.NewSweeper(reservationRepository, metricsCollector, cfg.Booking.SweepInterval, log)
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.Run(workerCtx)
	}()

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

	stopWorker()
	<-sweeperDone

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
