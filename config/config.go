package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone lookups in minimal containers

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Mail      MailConfig      `mapstructure:"mail"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`        // debug, release, test
	Environment     string        `mapstructure:"environment"` // development, production
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Timezone        string        `mapstructure:"timezone"`
}

// IsDevelopment reports whether internal error detail may be exposed.
func (s ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(s.Environment, "development")
}

// Location resolves the configured timezone, falling back to UTC.
func (s ServerConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	RetryInterval   time.Duration `mapstructure:"retry_interval"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string. An explicit URL wins.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig holds per-group request budgets. All groups share one window.
type RateLimitConfig struct {
	Window   time.Duration `mapstructure:"window"`
	Public   int64         `mapstructure:"public"`
	Admin    int64         `mapstructure:"admin"`
	Donation int64         `mapstructure:"donation"`
	Upload   int64         `mapstructure:"upload"`
}

type AuthConfig struct {
	URL            string        `mapstructure:"url"`
	AnonKey        string        `mapstructure:"anon_key"`
	ServiceRoleKey string        `mapstructure:"service_role_key"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	Timeout        time.Duration `mapstructure:"timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

type StorageConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	PublicURL       string        `mapstructure:"public_url"`
	MaxFileSize     int64         `mapstructure:"max_file_size"`
	MaxFiles        int           `mapstructure:"max_files"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Configured reports whether enough settings exist to reach the object store.
func (s StorageConfig) Configured() bool {
	return s.Endpoint != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

type GatewayConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	PublicKey        string        `mapstructure:"public_key"`
	SecretKey        string        `mapstructure:"secret_key"`
	WebhookSecret    string        `mapstructure:"webhook_secret"`
	RequireSignature bool          `mapstructure:"require_signature"`
	Currency         string        `mapstructure:"currency"`
	ReferencePrefix  string        `mapstructure:"reference_prefix"`
	Title            string        `mapstructure:"title"`
	Description      string        `mapstructure:"description"`
	Logo             string        `mapstructure:"logo"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type MailConfig struct {
	Provider       string        `mapstructure:"provider"` // smtp, mailgun
	SMTPHost       string        `mapstructure:"smtp_host"`
	SMTPPort       int           `mapstructure:"smtp_port"`
	SMTPUser       string        `mapstructure:"smtp_user"`
	SMTPPassword   string        `mapstructure:"smtp_password"`
	SMTPSecure     bool          `mapstructure:"smtp_secure"`
	MailgunDomain  string        `mapstructure:"mailgun_domain"`
	MailgunAPIKey  string        `mapstructure:"mailgun_api_key"`
	MailgunAPIBase string        `mapstructure:"mailgun_api_base"`
	From           string        `mapstructure:"from"`
	To             string        `mapstructure:"to"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: HCM_.
// Nested keys use underscore: HCM_DATABASE_URL, HCM_GATEWAY_SECRET_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.environment", "production")
	v.SetDefault("server.public_base_url", "")
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "church_cms")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 50)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.retry_interval", "5s")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("ratelimit.window", "15m")
	v.SetDefault("ratelimit.public", 100)
	v.SetDefault("ratelimit.admin", 50)
	v.SetDefault("ratelimit.donation", 10)
	v.SetDefault("ratelimit.upload", 30)
	v.SetDefault("auth.url", "")
	v.SetDefault("auth.anon_key", "")
	v.SetDefault("auth.service_role_key", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.timeout", "5s")
	v.SetDefault("auth.cache_ttl", "60s")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.public_url", "")
	v.SetDefault("storage.max_file_size", 100<<20)
	v.SetDefault("storage.max_files", 10)
	v.SetDefault("storage.timeout", "60s")
	v.SetDefault("gateway.base_url", "https://api.flutterwave.com")
	v.SetDefault("gateway.public_key", "")
	v.SetDefault("gateway.secret_key", "")
	v.SetDefault("gateway.webhook_secret", "")
	v.SetDefault("gateway.require_signature", false)
	v.SetDefault("gateway.currency", "NGN")
	v.SetDefault("gateway.reference_prefix", "hcm")
	v.SetDefault("gateway.title", "Church Donation")
	v.SetDefault("gateway.description", "Support the ministry")
	v.SetDefault("gateway.logo", "")
	v.SetDefault("gateway.timeout", "15s")
	v.SetDefault("mail.provider", "smtp")
	v.SetDefault("mail.smtp_host", "")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.smtp_user", "")
	v.SetDefault("mail.smtp_password", "")
	v.SetDefault("mail.smtp_secure", false)
	v.SetDefault("mail.mailgun_domain", "")
	v.SetDefault("mail.mailgun_api_key", "")
	v.SetDefault("mail.mailgun_api_base", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: HCM_DATABASE_URL -> database.url
	v.SetEnvPrefix("HCM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
