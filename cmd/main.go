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

	approveEmployeeHandler "github.com/svojko1/nechty-sub001/internal/api/handlers/approve_employee"
	cancelQueueEntryHandler "github.com/svojko1/nechty-sub001/internal/api/handlers/cancel_queue_entry"
	checkInHandler "github.com/svojko1/nechty-sub001/internal/api/handlers/check_in"
	checkOutHandler "github.com/svojko1/nechty-sub001/internal/api/handlers/check_out"
	createAppointmentHandler "github.com/svojko1/nechty-sub001/internal/api/handlers/create_appointment"
	finishAppointmentHandler "github.com/svojko1/nechty-sub001/internal/api/handlers/finish_appointment"
	getAvailabilityHandler "github.com/svojko1/nechty-sub001/internal/api/handlers/get_availability"
	getQueuePositionHandler "github.com/svojko1/nechty-sub001/internal/api/handlers/get_queue_position"
	"github.com/svojko1/nechty-sub001/internal/api/middleware"
	"github.com/svojko1/nechty-sub001/internal/app"
	"github.com/svojko1/nechty-sub001/internal/config"
	"github.com/svojko1/nechty-sub001/internal/infra/notify"
	appointmentRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/appointment"
	customerQueueRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/customerqueue"
	employeeQueueRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/employeequeue"
	facilityRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/facility"
	serviceCatalogRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/servicecatalog"
	availabilityService "github.com/svojko1/nechty-sub001/internal/service/availability"
	durationService "github.com/svojko1/nechty-sub001/internal/service/duration"
	employeeQueueService "github.com/svojko1/nechty-sub001/internal/service/employeequeue"
	waitQueueService "github.com/svojko1/nechty-sub001/internal/service/waitqueue"
	checkInUC "github.com/svojko1/nechty-sub001/internal/usecase/check_in"
	createAppointmentUC "github.com/svojko1/nechty-sub001/internal/usecase/create_appointment"
	finishAppointmentUC "github.com/svojko1/nechty-sub001/internal/usecase/finish_appointment"
	"github.com/svojko1/nechty-sub001/pkg/dbmetrics"
	"github.com/svojko1/nechty-sub001/pkg/logger"
	"github.com/svojko1/nechty-sub001/pkg/metrics"
	"github.com/svojko1/nechty-sub001/pkg/simpletxmanager"
	"github.com/svojko1/nechty-sub001/pkg/txmanager"
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

	log.Info("Starting salon scheduling service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Применяем миграции
	migrator, err := app.NewMigrator(db, cfg.Database.MigrationsDir)
	if err != nil {
		log.Fatal("Failed to create migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database migrations applied, version=%d", version)
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository   *appointmentRepo.Repository
		employeeQueueRepository *employeeQueueRepo.Repository
		customerQueueRepository *customerQueueRepo.Repository
		facilityRepository      *facilityRepo.Repository
		serviceRepository       *serviceCatalogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		employeeQueueRepository = employeeQueueRepo.NewRepository(wrappedDB)
		customerQueueRepository = customerQueueRepo.NewRepository(wrappedDB)
		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		serviceRepository = serviceCatalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		employeeQueueRepository = employeeQueueRepo.NewRepository(db)
		customerQueueRepository = customerQueueRepo.NewRepository(db)
		facilityRepository = facilityRepo.NewRepository(db)
		serviceRepository = serviceCatalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	durationResolver := durationService.NewResolver(serviceRepository, log)
	availabilitySvc := availabilityService.NewService(
		appointmentRepository,
		employeeQueueRepository,
		facilityRepository,
		log,
	)
	employeeQueueSvc := employeeQueueService.NewService(employeeQueueRepository, log)
	waitQueueSvc := waitQueueService.NewService(
		customerQueueRepository,
		cfg.Queue.WaitPerPersonMinutes,
		cfg.Queue.MinWaitMinutes,
		log,
	)

	// Трекер позиций очереди: выделенное LISTEN/NOTIFY соединение
	// и единственная горутина-потребитель
	pqListener := notify.NewPQListener(cfg.Database.DSN(), log)

	var trackerMetrics waitQueueService.MetricsCollector
	if cfg.Metrics.Enabled {
		trackerMetrics = metricsCollector
	}
	tracker := waitQueueService.NewTracker(
		waitQueueSvc,
		customerQueueRepository,
		pqListener,
		[]string{cfg.Queue.QueueChannel, cfg.Queue.AppointmentChannel},
		log,
		trackerMetrics,
	)

	trackerCtx, stopTracker := context.WithCancel(context.Background())
	defer stopTracker()

	go func() {
		if err := tracker.Run(trackerCtx); err != nil {
			log.Error("Queue tracker stopped with error: %v", err)
		}
	}()
	log.Info("Queue position tracker started (channels: %s, %s)",
		cfg.Queue.QueueChannel, cfg.Queue.AppointmentChannel)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		employeeQueueRepository,
		durationResolver,
		availabilitySvc,
		waitQueueSvc,
		txMgr,
		log,
	)
	checkInUseCase := checkInUC.NewUseCase(
		appointmentRepository,
		employeeQueueRepository,
		txMgr,
		log,
	)
	finishAppointmentUseCase := finishAppointmentUC.NewUseCase(
		appointmentRepository,
		employeeQueueRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	finishAppointment := finishAppointmentHandler.NewHandler(finishAppointmentUseCase, log)
	approveEmployee := approveEmployeeHandler.NewHandler(employeeQueueSvc, log)
	checkOut := checkOutHandler.NewHandler(employeeQueueSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, durationResolver, log)
	getQueuePosition := getQueuePositionHandler.NewHandler(waitQueueSvc, log)
	cancelQueueEntry := cancelQueueEntryHandler.NewHandler(waitQueueSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание записи или постановка в очередь ожидания
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Начало и завершение обслуживания
	api.HandleFunc("/appointments/{appointmentId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/finish", finishAppointment.Handle).Methods(http.MethodPost)

	// Доступность ресурсов точки
	api.HandleFunc("/facilities/{facilityId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Очередь ожидания клиентов
	api.HandleFunc("/queue/{entryId}/position", getQueuePosition.Handle).Methods(http.MethodGet)
	api.HandleFunc("/queue/{entryId}", cancelQueueEntry.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Управление очередью сотрудников
	protected.HandleFunc("/employee-queue", approveEmployee.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/employee-queue/{entryId}/check-out", checkOut.Handle).Methods(http.MethodPost)

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

	// Останавливаем трекер и LISTEN/NOTIFY соединение
	stopTracker()
	if err := pqListener.Close(); err != nil {
		log.Error("Failed to close pq listener: %v", err)
	}

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

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
