package handler

import (
	"net/http"
	"time"

	"church-cms/config"
	"church-cms/internal/adapter/http/middleware"
	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"
	"church-cms/pkg/response"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SermonSvc      ports.SermonService
	EventSvc       ports.EventService
	BlogSvc        ports.BlogService
	TestimonialSvc ports.TestimonialService
	TeamSvc        ports.TeamService
	PrayerSvc      ports.PrayerService
	SettingsSvc    ports.SettingsService
	DonationSvc    ports.DonationService
	ContactSvc     ports.ContactService
	UploadSvc      ports.UploadService
	AuditSvc       ports.AuditService // nil = audit logging disabled

	Verifier       ports.TokenVerifier
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	DB             middleware.ReadinessChecker
	HealthCheckers []ports.HealthChecker

	Server     config.ServerConfig
	RateLimits config.RateLimitConfig
	Auth       config.AuthConfig
	Storage    config.StorageConfig

	OpenAPISpec []byte
	StartedAt   time.Time
	Logger      zerolog.Logger
}

// multipartOverhead covers form fields and part headers around the files.
const multipartOverhead = 1 << 20

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	log := deps.Logger

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      deps.Server.IsDevelopment(),
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/upload"})))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperror.ErrNotFound("Route"))
	})

	r.GET("/health", HealthCheck(deps.DB, deps.StartedAt, deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec(deps.OpenAPISpec))
	}

	rules := middleware.RateLimitRules(deps.RateLimits)

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok || rule.Limit <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, log)
	}

	api := r.Group("/api")
	if deps.AuditSvc != nil {
		api.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Served before rate limiting and the database check.
	api.GET("/config", PublicConfig(deps.Auth.URL, deps.Auth.AnonKey))

	jsonLimit := middleware.MaxBodySize(deps.Server.MaxBodyBytes)
	donations := NewDonationHandler(deps.DonationSvc, deps.Server.PublicBaseURL)

	// The gateway must always reach the webhook.
	api.POST("/donations/webhook", jsonLimit, donations.Webhook)

	core := api.Group("", rl(middleware.GroupPublic), middleware.DBReady(deps.DB))

	user := middleware.RequireUser(deps.Verifier, log)
	admin := []gin.HandlerFunc{middleware.RequireAdmin(deps.Verifier, log), rl(middleware.GroupAdmin)}
	optional := middleware.OptionalAuth(deps.Verifier)
	id := middleware.ValidateID()

	withAdmin := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, admin...), handlers...)
	}

	sermonH := NewSermonHandler(deps.SermonSvc)
	sermons := core.Group("/sermons", jsonLimit)
	{
		sermons.GET("", sermonH.List)
		sermons.GET("/:id/download/:type", id, user, sermonH.Download)
		sermons.POST("/:id/download", id, sermonH.RecordDownload)
		sermons.GET("/:id", id, sermonH.Get)
		sermons.POST("", withAdmin(sermonH.Create)...)
		sermons.PUT("/:id", withAdmin(id, sermonH.Update)...)
		sermons.DELETE("/:id", withAdmin(id, sermonH.Delete)...)
	}

	eventH := NewEventHandler(deps.EventSvc)
	events := core.Group("/events", jsonLimit)
	{
		events.GET("", eventH.List)
		events.POST("/seed", withAdmin(eventH.Seed)...)
		events.GET("/:id", id, eventH.Get)
		events.POST("", withAdmin(eventH.Create)...)
		events.PUT("/:id", withAdmin(id, eventH.Update)...)
		events.DELETE("/:id", withAdmin(id, eventH.Delete)...)
	}

	blogH := NewBlogHandler(deps.BlogSvc)
	blog := core.Group("/blog", jsonLimit)
	{
		blog.GET("", blogH.List)
		blog.GET("/:id", id, blogH.Get)
		blog.POST("", withAdmin(blogH.Create)...)
		blog.PUT("/:id", withAdmin(id, blogH.Update)...)
		blog.DELETE("/:id", withAdmin(id, blogH.Delete)...)
	}

	testimonialH := NewTestimonialHandler(deps.TestimonialSvc)
	testimonials := core.Group("/testimonials", jsonLimit)
	{
		testimonials.GET("", optional, testimonialH.List)
		testimonials.GET("/:id", id, optional, testimonialH.Get)
		testimonials.POST("", optional, testimonialH.Create)
		testimonials.PUT("/:id", withAdmin(id, testimonialH.Update)...)
		testimonials.DELETE("/:id", withAdmin(id, testimonialH.Delete)...)
	}

	teamH := NewTeamHandler(deps.TeamSvc)
	team := core.Group("/team", jsonLimit)
	{
		team.GET("", teamH.List)
		team.GET("/:id", id, teamH.Get)
		team.POST("", withAdmin(teamH.Create)...)
		team.PUT("/:id", withAdmin(id, teamH.Update)...)
		team.DELETE("/:id", withAdmin(id, teamH.Delete)...)
	}

	prayerH := NewPrayerHandler(deps.PrayerSvc)
	prayers := core.Group("/prayers", jsonLimit)
	{
		prayers.POST("", prayerH.Create)
		prayers.GET("", withAdmin(prayerH.List)...)
		prayers.GET("/:id", withAdmin(id, prayerH.Get)...)
		prayers.PUT("/:id", withAdmin(id, prayerH.Update)...)
		prayers.DELETE("/:id", withAdmin(id, prayerH.Delete)...)
	}

	settingsH := NewSettingsHandler(deps.SettingsSvc)
	settings := core.Group("/settings", jsonLimit)
	{
		settings.GET("", settingsH.Get)
		settings.PUT("", withAdmin(settingsH.Update)...)
	}

	donationGroup := core.Group("/donations", jsonLimit)
	{
		donationGroup.POST("/initialize", rl(middleware.GroupDonation), donations.Initialize)
		donationGroup.GET("/verify/:transactionReference", donations.Verify)
		donationGroup.GET("", withAdmin(donations.List)...)
		donationGroup.GET("/stats", withAdmin(donations.Stats)...)
	}

	contactH := NewContactHandler(deps.ContactSvc)
	core.POST("/contact", jsonLimit, contactH.Send)

	uploadH := NewUploadHandler(deps.UploadSvc, deps.Storage.MaxFileSize)
	uploadLimit := middleware.MaxBodySize(maxUploadBytes(deps.Storage))
	upload := core.Group("/upload", withAdmin(rl(middleware.GroupUpload))...)
	{
		upload.POST("", uploadLimit, uploadH.Upload)
		upload.POST("/multiple", uploadLimit, uploadH.UploadMultiple)
		upload.DELETE("", jsonLimit, uploadH.Delete)
	}

	return r
}

func maxUploadBytes(cfg config.StorageConfig) int64 {
	if cfg.MaxFileSize <= 0 {
		return 0
	}
	files := int64(cfg.MaxFiles)
	if files < 1 {
		files = 1
	}
	return cfg.MaxFileSize*files + multipartOverhead
}

// NewHTTPHandler wraps the engine with CORS for the configured origins.
func NewHTTPHandler(engine *gin.Engine, cfg config.CORSConfig) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", response.HeaderRequestID},
		ExposedHeaders:   []string{response.HeaderRequestID, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	})(engine)
}
