package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"church-cms/config"
	apidocs "church-cms/docs/api"
	"church-cms/internal/adapter/gateway/flutterwave"
	httpHandler "church-cms/internal/adapter/http/handler"
	"church-cms/internal/adapter/identity"
	"church-cms/internal/adapter/mail"
	"church-cms/internal/adapter/objectstore"
	memStorage "church-cms/internal/adapter/storage/memory"
	pgStorage "church-cms/internal/adapter/storage/postgres"
	redisStorage "church-cms/internal/adapter/storage/redis"
	"church-cms/internal/core/ports"
	"church-cms/internal/service"
	"church-cms/pkg/logger"
	"church-cms/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(os.Getenv("HCM_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)
	response.SetDevelopmentMode(cfg.Server.IsDevelopment())

	log.Info().
		Str("environment", cfg.Server.Environment).
		Int("port", cfg.Server.Port).
		Msg("Starting Church CMS API")

	startedAt := time.Now()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// PostgreSQL: the server starts without it and answers 503 until connected.
	db := pgStorage.NewConnector(cfg.Database, log)
	if cfg.Database.AutoMigrate {
		db.OnReady(func(ctx context.Context, pool pgStorage.Pool) error {
			_, err := pgStorage.Migrate(ctx, pool, log)
			return err
		})
	}
	if err := db.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("PostgreSQL unavailable, retrying in background")
	} else {
		log.Info().Msg("PostgreSQL connected")
	}
	go db.Run(ctx)
	defer db.Close()

	healthCheckers := []ports.HealthChecker{pgStorage.NewHealthCheck(db)}

	// Redis backs rate limiting and the identity cache when available.
	var (
		rdb            *goredis.Client
		rateLimitStore ports.RateLimitStore = memStorage.NewRateLimitStore()
		identityCache  ports.IdentityCache
	)
	if cfg.Redis.Enabled {
		rdb, err = redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, using in-memory rate limiting")
		} else {
			defer rdb.Close()
			rateLimitStore = redisStorage.NewRateLimitStore(rdb)
			identityCache = redisStorage.NewIdentityCache(rdb)
			healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
			log.Info().Msg("Redis connected")
		}
	}

	verifier := identity.NewVerifier(cfg.Auth, identityCache, log)

	// Object storage is optional; uploads answer 500 until configured.
	var objectStore ports.ObjectStore
	if cfg.Storage.Configured() {
		store, err := objectstore.New(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		objectStore = store
	} else {
		log.Warn().Msg("Object storage not configured, uploads disabled")
	}

	var mailer ports.Mailer
	if m, err := mail.New(cfg.Mail); err == nil {
		mailer = m
	} else if errors.Is(err, mail.ErrNotConfigured) {
		log.Warn().Msg("Mail not configured, contact form disabled")
	} else {
		log.Fatal().Err(err).Msg("Failed to initialize mailer")
	}

	gateway := flutterwave.New(cfg.Gateway, nil)
	if !gateway.Configured() {
		log.Warn().Msg("Payment gateway not configured, donations disabled")
	}

	// Initialize repositories
	donationRepo := pgStorage.NewDonationRepo(db)
	sermonRepo := pgStorage.NewSermonRepo(db)
	eventRepo := pgStorage.NewEventRepo(db)
	blogRepo := pgStorage.NewBlogRepo(db)
	testimonialRepo := pgStorage.NewTestimonialRepo(db)
	teamRepo := pgStorage.NewTeamRepo(db)
	prayerRepo := pgStorage.NewPrayerRepo(db)
	settingsRepo := pgStorage.NewSettingsRepo(db)
	auditRepo := pgStorage.NewAuditRepository(db)

	// Initialize business services
	donationSvc := service.NewDonationService(donationRepo, gateway, service.NewHMACSignatureService(), service.DonationConfig{
		Currency:         cfg.Gateway.Currency,
		ReferencePrefix:  cfg.Gateway.ReferencePrefix,
		Title:            cfg.Gateway.Title,
		Description:      cfg.Gateway.Description,
		Logo:             cfg.Gateway.Logo,
		WebhookSecret:    cfg.Gateway.WebhookSecret,
		RequireSignature: cfg.Gateway.RequireSignature,
	}, log)

	mailFrom := cfg.Mail.From
	if mailFrom == "" {
		mailFrom = cfg.Mail.SMTPUser
	}
	contactSvc := service.NewContactService(mailer, service.ContactConfig{From: mailFrom, To: cfg.Mail.To}, log)
	uploadSvc := service.NewUploadService(objectStore, service.UploadConfig{
		MaxFileSize: cfg.Storage.MaxFileSize,
		MaxFiles:    cfg.Storage.MaxFiles,
	}, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SermonSvc:      service.NewSermonService(sermonRepo, log),
		EventSvc:       service.NewEventService(eventRepo, cfg.Server.Location(), log),
		BlogSvc:        service.NewBlogService(blogRepo),
		TestimonialSvc: service.NewTestimonialService(testimonialRepo, log),
		TeamSvc:        service.NewTeamService(teamRepo),
		PrayerSvc:      service.NewPrayerService(prayerRepo),
		SettingsSvc:    service.NewSettingsService(settingsRepo),
		DonationSvc:    donationSvc,
		ContactSvc:     contactSvc,
		UploadSvc:      uploadSvc,
		AuditSvc:       service.NewAuditService(auditRepo, log),
		Verifier:       verifier,
		RateLimitStore: rateLimitStore,
		DB:             db,
		HealthCheckers: healthCheckers,
		Server:         cfg.Server,
		RateLimits:     cfg.RateLimit,
		Auth:           cfg.Auth,
		Storage:        cfg.Storage,
		OpenAPISpec:    apidocs.OpenAPI,
		StartedAt:      startedAt,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpHandler.NewHTTPHandler(router, cfg.CORS),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")
	stop()

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
