package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uplift-backend/config"
	deliveryHttp "uplift-backend/internal/delivery/http"
	"uplift-backend/internal/delivery/http/handler"
	"uplift-backend/internal/delivery/http/middleware"
	"uplift-backend/internal/infrastructure/cache"
	"uplift-backend/internal/infrastructure/database"
	"uplift-backend/internal/infrastructure/email"
	"uplift-backend/internal/infrastructure/metrics"
	"uplift-backend/internal/infrastructure/payment"
	"uplift-backend/internal/policy"
	"uplift-backend/internal/repository"
	"uplift-backend/internal/service"
	"uplift-backend/internal/usecase"
	"uplift-backend/pkg/jwt"
	"uplift-backend/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Notifier    *service.NotificationService
	PurgeWorker *service.AppointmentPurgeWorker
	Log         *logrus.Logger
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	rules, err := buildRules(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid booking configuration: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Timezone, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.initialize(cfg, rules, db, redisClient, log)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// buildRules turns the booking configuration into policy rules.
func buildRules(cfg *config.Config) (policy.Rules, error) {
	hours, err := policy.NewBusinessHours(cfg.Booking.BusinessOpen, cfg.Booking.BusinessClose)
	if err != nil {
		return policy.Rules{}, err
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return policy.Rules{}, fmt.Errorf("load timezone %q: %w", cfg.App.Timezone, err)
	}

	return policy.Rules{
		WindowDays: cfg.Booking.ProtectedWindowDays,
		Hours:      hours,
		Location:   loc,
	}, nil
}

// paymentGateway uses Razorpay when credentials are configured and the stub otherwise.
func paymentGateway(cfg *config.Config, log *logrus.Logger) usecase.PaymentGateway {
	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		log.Warn("Razorpay credentials not set, using stub payment gateway")
		return payment.NewStubGateway(log)
	}
	return payment.NewRazorpayClient(cfg.Razorpay, log)
}

// initialize creates every layer and the HTTP server
func (app *App) initialize(cfg *config.Config, rules policy.Rules, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	sessionRepo := repository.NewSessionRepository()
	articleRepo := repository.NewArticleRepository()
	questionRepo := repository.NewQuestionRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	ledger := repository.NewAppointmentLedger(db)
	directory := repository.NewDoctorDirectory(db)

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	slotHolds := service.NewSlotHoldService(redisClient, log, cfg.Booking.SlotHoldTTL)
	app.Notifier = service.NewNotificationService(email.NewSender(cfg.SendGrid, log), log, bookingMetrics, cfg.Notifier.Workers, cfg.Notifier.QueueSize)
	gateway := paymentGateway(cfg, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorProfileRepo, auditService, jwtService, redisClient)
	doctorUsecase := usecase.NewDoctorUsecase(log, directory, auditService)
	bookingUsecase := usecase.NewBookingUsecase(log, ledger, directory, rules, gateway, app.Notifier, slotHolds, auditService, bookingMetrics, nil)
	paymentUsecase := usecase.NewPaymentUsecase(log, ledger, directory, rules, gateway, slotHolds, cfg.Razorpay.Currency, nil)
	sessionUsecase := usecase.NewSessionUsecase(db, log, sessionRepo, directory, auditService, rules, nil)
	articleUsecase := usecase.NewArticleUsecase(db, log, articleRepo, userRepo)
	chatbotUsecase := usecase.NewChatbotUsecase(db, log, questionRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	app.PurgeWorker = service.NewAppointmentPurgeWorker(bookingUsecase, redisClient, log, cfg.Booking.PurgeInterval)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:        handler.NewAuthHandler(authUsecase, customValidator),
		Doctor:      handler.NewDoctorHandler(doctorUsecase, customValidator),
		Appointment: handler.NewAppointmentHandler(bookingUsecase, customValidator),
		Payment:     handler.NewPaymentHandler(paymentUsecase, customValidator),
		Session:     handler.NewSessionHandler(sessionUsecase, customValidator),
		Article:     handler.NewArticleHandler(articleUsecase, customValidator),
		Chatbot:     handler.NewChatbotHandler(chatbotUsecase, customValidator),
		AuditLog:    handler.NewAuditLogHandler(auditLogUsecase, customValidator),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, registry, log)

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and background workers, and blocks until a shutdown
// signal arrives or the server fails.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.PurgeWorker.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.Log.Info("Shutting down server...")

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			app.Log.Errorf("Server forced to shutdown: %v", err)
		}
		return nil
	})

	err := g.Wait()

	// Stop workers before the connections they use
	app.PurgeWorker.Stop()
	app.Notifier.Stop()
	app.Close()

	app.Log.Info("Server shutdown complete")
	return err
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
