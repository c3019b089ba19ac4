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

	cancelAppointmentHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/create_appointment"
	deleteScheduleOverrideHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/delete_schedule_override"
	dispatchRemindersHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/dispatch_reminders"
	getAppointmentHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/get_available_slots"
	getBarberHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/get_barber"
	getBarberAppointmentsHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/get_barber_appointments"
	getBarberScheduleHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/get_barber_schedule"
	getServiceHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/get_service"
	getCustomerAppointmentsHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/get_customer_appointments"
	listBarbersHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/list_barbers"
	listServicesHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/list_services"
	rescheduleAppointmentHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/reschedule_appointment"
	setScheduleOverrideHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/set_schedule_override"
	updateAppointmentStatusHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/update_appointment_status"
	updateBarberScheduleHandler "github.com/igestaos-eng/barbearia-inicio/internal/api/handlers/update_barber_schedule"
	"github.com/igestaos-eng/barbearia-inicio/internal/api/middleware"
	"github.com/igestaos-eng/barbearia-inicio/internal/config"
	slotsCache "github.com/igestaos-eng/barbearia-inicio/internal/infra/cache/slots"
	appointmentRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/appointment"
	barberRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/barber"
	customerRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/customer"
	scheduleRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/schedule"
	serviceRepo "github.com/igestaos-eng/barbearia-inicio/internal/infra/storage/service"
	"github.com/igestaos-eng/barbearia-inicio/internal/scheduling"
	appointmentsService "github.com/igestaos-eng/barbearia-inicio/internal/service/appointments"
	catalogService "github.com/igestaos-eng/barbearia-inicio/internal/service/catalog"
	notificationsService "github.com/igestaos-eng/barbearia-inicio/internal/service/notifications"
	createAppointmentUC "github.com/igestaos-eng/barbearia-inicio/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/igestaos-eng/barbearia-inicio/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/igestaos-eng/barbearia-inicio/internal/usecase/reschedule_appointment"
	"github.com/igestaos-eng/barbearia-inicio/pkg/dbmetrics"
	"github.com/igestaos-eng/barbearia-inicio/pkg/logger"
	"github.com/igestaos-eng/barbearia-inicio/pkg/metrics"
	"github.com/igestaos-eng/barbearia-inicio/pkg/simpletxmanager"
	"github.com/igestaos-eng/barbearia-inicio/pkg/txmanager"
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

	log.Info("Starting barbearia booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Кэш слотов (опционален: сервис работает и без Redis)
	var cache *slotsCache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable, slots cache disabled: %v", err)
		} else {
			cache = slotsCache.NewCache(redisClient,
				time.Duration(cfg.Redis.SlotCacheTTLMinutes)*time.Minute)
			log.Info("Slots cache enabled (redis=%s, ttl=%dm)", cfg.Redis.Addr, cfg.Redis.SlotCacheTTLMinutes)
		}
		cancelPing()
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		barberRepository      *barberRepo.Repository
		serviceRepository     *serviceRepo.Repository
		customerRepository    *customerRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		barberRepository = barberRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		barberRepository = barberRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Ядро расчёта занятости
	conflictDetector := scheduling.NewConflictDetector(appointmentRepository)
	availabilityCalculator := scheduling.NewAvailabilityCalculator(scheduleRepository, appointmentRepository)

	// Кэш как интерфейс: nil указатель не должен попасть в интерфейсное поле
	var apptCache appointmentsService.SlotsCache
	var catCache catalogService.SlotsCache
	var createCache createAppointmentUC.SlotsCache
	var rescheduleCache rescheduleAppointmentUC.SlotsCache
	var slotsUCCache getAvailableSlotsUC.SlotsCache
	if cache != nil {
		apptCache = cache
		catCache = cache
		createCache = cache
		rescheduleCache = cache
		slotsUCCache = cache
	}

	// Инициализируем сервисы
	notifier := notificationsService.NewService(log)

	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		serviceRepository,
		customerRepository,
		apptCache,
		notifier,
		&scheduling.RealTimeProvider{},
		time.Duration(cfg.Booking.ReminderHours)*time.Hour,
		log,
	)

	catalogSvc := catalogService.NewService(
		barberRepository,
		serviceRepository,
		scheduleRepository,
		catCache,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		barberRepository,
		serviceRepository,
		customerRepository,
		scheduleRepository,
		conflictDetector,
		createCache,
		notifier,
		txMgr,
		cfg.Booking.MaxAdvanceDays,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		conflictDetector,
		rescheduleCache,
		notifier,
		txMgr,
		cfg.Booking.MaxAdvanceDays,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityCalculator,
		serviceRepository,
		slotsUCCache,
		cfg.Booking.DefaultDurationMinutes,
		cfg.Booking.MaxAdvanceDays,
		log,
	)

	// Инициализируем handlers
	listBarbers := listBarbersHandler.NewHandler(catalogSvc, log)
	getBarber := getBarberHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	getBarberSchedule := getBarberScheduleHandler.NewHandler(catalogSvc, log)
	updateBarberSchedule := updateBarberScheduleHandler.NewHandler(catalogSvc, log)
	setScheduleOverride := setScheduleOverrideHandler.NewHandler(catalogSvc, log)
	deleteScheduleOverride := deleteScheduleOverrideHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, cfg.Booking.SlotStepMinutes, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getBarberAppointments := getBarberAppointmentsHandler.NewHandler(appointmentsSvc, log)
	dispatchReminders := dispatchRemindersHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/barbers", listBarbers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barberId}", getBarber.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barberId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barberId}/schedule", getBarberSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- История ---
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/barbers/{barberId}/appointments", getBarberAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием ---
	protected.HandleFunc("/barbers/{barberId}/schedule", updateBarberSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/barbers/{barberId}/schedule/overrides", setScheduleOverride.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/barbers/{barberId}/schedule/overrides/{date}", deleteScheduleOverride.Handle).Methods(http.MethodDelete)

	// --- Служебное ---
	protected.HandleFunc("/internal/reminders/dispatch", dispatchReminders.Handle).Methods(http.MethodPost)

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

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
