package routes

import (
	"SMCHealth/cache"
	"SMCHealth/config"
	"SMCHealth/controllers"
	"SMCHealth/database"
	"SMCHealth/events"
	"SMCHealth/handlers"
	"SMCHealth/middlewares"
	"SMCHealth/notifier"
	"SMCHealth/repositories"
	"SMCHealth/services"
	"SMCHealth/utils"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the long lived resources the HTTP layer is built on.
type Dependencies struct {
	Config    *config.AppConfig
	DB        *gorm.DB
	Redis     *redis.Client
	Cache     *cache.Cache
	Locker    *database.Locker
	Publisher events.Publisher
	Alerter   notifier.Alerter
	Tokens    *utils.TokenManager
	Log       *zap.Logger
}

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(deps Dependencies) http.Handler {
	cfg := deps.Config
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.CorsMiddleware(middlewares.NewCorsConfig(cfg.CORSOrigins)))
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	router.Use(middlewares.LoggingMiddleware(deps.Log))

	// Initialize repositories, services, and handlers
	transactor := repositories.NewTransactor(deps.DB)
	hospitalRepo := repositories.NewHospitalRepository(deps.DB)
	patientRepo := repositories.NewPatientRepository(deps.DB)
	doctorRepo := repositories.NewDoctorRepository(deps.DB, deps.Cache, deps.Locker, deps.Log)
	appointmentRepo := repositories.NewAppointmentRepository(deps.DB)
	inventoryRepo := repositories.NewInventoryRepository(deps.DB, deps.Cache, deps.Log)

	retry := services.RetryPolicy{MaxAttempts: cfg.LedgerMaxAttempts, BaseDelay: cfg.LedgerRetryBase}
	strict := cfg.AppointmentTransitions == config.TransitionsStrict

	ledger := services.NewBedLedger(hospitalRepo, deps.Publisher, deps.Alerter, deps.Log)
	patientService := services.NewPatientService(transactor, patientRepo, doctorRepo, ledger, retry, deps.Publisher, deps.Log)
	doctorService := services.NewDoctorService(doctorRepo, patientRepo, deps.Log)
	appointmentService := services.NewAppointmentService(appointmentRepo, doctorRepo, retry, strict, deps.Publisher, deps.Log)
	inventoryService := services.NewInventoryService(inventoryRepo, hospitalRepo, deps.Alerter, deps.Log)
	hospitalService := services.NewHospitalService(hospitalRepo, patientRepo, ledger, deps.Log)

	hospitalHandler := handlers.NewHospitalHandler(hospitalService, ledger, deps.Log)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, deps.Log)

	// Register routes
	controllers.SetupRootRoute(router, healthChecks(deps))

	adminController := &controllers.AdminController{Hospitals: hospitalHandler}
	adminController.RegisterRoutes(router, cfg.GetBearerToken())

	hospitalController := &controllers.HospitalController{
		Hospitals:    hospitalHandler,
		Patients:     handlers.NewPatientHandler(patientService, deps.Log),
		Doctors:      handlers.NewDoctorHandler(doctorService, deps.Log),
		Appointments: appointmentHandler,
		Resources:    handlers.NewResourceHandler(inventoryService, deps.Log),
	}
	hospitalController.RegisterRoutes(router, deps.Tokens)

	citizenController := &controllers.CitizenController{Appointments: appointmentHandler}
	citizenController.RegisterRoutes(router, deps.Tokens)

	return router
}

func healthChecks(deps Dependencies) map[string]controllers.HealthCheck {
	checks := map[string]controllers.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	return checks
}
