package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dentalops/dental-admin-api/config"
	"github.com/dentalops/dental-admin-api/internal/email"
	"github.com/dentalops/dental-admin-api/internal/handler"
	appointmenthandler "github.com/dentalops/dental-admin-api/internal/handler/appointment"
	authhandler "github.com/dentalops/dental-admin-api/internal/handler/auth"
	charthandler "github.com/dentalops/dental-admin-api/internal/handler/chart"
	observationhandler "github.com/dentalops/dental-admin-api/internal/handler/observation"
	patienthandler "github.com/dentalops/dental-admin-api/internal/handler/patient"
	prescriptionhandler "github.com/dentalops/dental-admin-api/internal/handler/prescription"
	procedurehandler "github.com/dentalops/dental-admin-api/internal/handler/procedure"
	promhandler "github.com/dentalops/dental-admin-api/internal/handler/prometheus"
	"github.com/dentalops/dental-admin-api/internal/middleware"
	"github.com/dentalops/dental-admin-api/internal/repository/postgres"
	"github.com/dentalops/dental-admin-api/internal/router"
	appointmentsvc "github.com/dentalops/dental-admin-api/internal/service/appointment"
	authsvc "github.com/dentalops/dental-admin-api/internal/service/auth"
	chartsvc "github.com/dentalops/dental-admin-api/internal/service/chart"
	observationsvc "github.com/dentalops/dental-admin-api/internal/service/observation"
	patientsvc "github.com/dentalops/dental-admin-api/internal/service/patient"
	prescriptionsvc "github.com/dentalops/dental-admin-api/internal/service/prescription"
	proceduresvc "github.com/dentalops/dental-admin-api/internal/service/procedure"
	pkgauth "github.com/dentalops/dental-admin-api/pkg/auth"
	"github.com/dentalops/dental-admin-api/pkg/logger"
	"github.com/dentalops/dental-admin-api/pkg/metrics"
	"github.com/dentalops/dental-admin-api/pkg/security"
	"github.com/dentalops/dental-admin-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLogger.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	if err := validator.Register(); err != nil {
		appLogger.Fatal(err, "Failed to register validators")
	}

	m := metrics.NewMetrics("dental_admin", "api")

	// Repositories
	baseRepo := postgres.NewBaseRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	observationRepo := postgres.NewObservationRepository(db)
	procedureRepo := postgres.NewProcedureRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	clinicianRepo := postgres.NewClinicianRepository(db)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	// Services
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(0)
	mailer := email.NewSMTPService(cfg.SMTP, appLogger)

	chartService := chartsvc.NewService(observationRepo, procedureRepo, chartsvc.Config{
		CacheTTL:             cfg.Chart.CacheTTL,
		CacheCleanupInterval: cfg.Chart.CacheCleanupInterval,
	}, m)
	patientService := patientsvc.NewService(patientRepo)
	observationService := observationsvc.NewService(observationRepo, patientRepo, chartService)
	procedureService := proceduresvc.NewService(procedureRepo, patientRepo, observationRepo, chartService)
	prescriptionService := prescriptionsvc.NewService(prescriptionRepo, patientRepo, mailer, appLogger)
	appointmentService := appointmentsvc.NewService(appointmentRepo, patientRepo)
	authService := authsvc.NewService(clinicianRepo, hasher, jwtService)

	// Handlers
	base := handler.NewBaseHandler(outboxRepo, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	r := router.NewRouter(
		authMiddleware,
		authhandler.NewHandler(authService),
		patienthandler.NewHandler(patientService, base),
		charthandler.NewHandler(chartService),
		observationhandler.NewHandler(observationService, base),
		procedurehandler.NewHandler(procedureService, base),
		prescriptionhandler.NewHandler(prescriptionService, base),
		appointmenthandler.NewHandler(appointmentService, base),
		handler.NewHealthHandler(db),
		promhandler.New(),
		router.Config{
			RateLimit:  rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:  cfg.Server.RateLimitBurst,
			CORSConfig: middleware.DefaultCORSConfig(),
			Timeout:    cfg.Server.RequestTimeout,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("Starting server", "port", fmt.Sprintf("%d", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal(err, "Server forced to shutdown")
	}
	appLogger.Info("Server exited")
}
