package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server     ServerConfig
	App        AppConfig
	Cache      CacheConfig
	StoreDB    StoreDBConfig
	MembersDB  MembersDBConfig
	Storefront StorefrontConfig
	Uploads    UploadsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"deposito626-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	LoginKey    string `envconfig:"LOGIN_KEY" default:""` // Admin dashboard login key
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Type string `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StoreDBConfig holds the SQLite store database settings.
type StoreDBConfig struct {
	Path string `envconfig:"STORE_DB_PATH" default:"./data/store.db"`
}

// MembersDBConfig holds MySQL settings for the verified-members
// allowlist. Optional; without it the access gate cannot unlock.
type MembersDBConfig struct {
	Host     string `envconfig:"MEMBERS_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"MEMBERS_DB_PORT" default:"3306"`
	Name     string `envconfig:"MEMBERS_DB_NAME" default:"deposito626"`
	User     string `envconfig:"MEMBERS_DB_USER" default:"root"`
	Password string `envconfig:"MEMBERS_DB_PASS" default:""`
}

// StorefrontConfig holds cart and checkout settings.
type StorefrontConfig struct {
	CartStateDir     string        `envconfig:"CART_STATE_DIR" default:"./data"`
	CheckoutCooldown time.Duration `envconfig:"CHECKOUT_COOLDOWN" default:"4s"`
	StaleOrderAge    time.Duration `envconfig:"STALE_ORDER_AGE" default:"168h"`
	CleanupInterval  time.Duration `envconfig:"CLEANUP_INTERVAL" default:"6h"`
}

// UploadsConfig holds product image upload settings.
type UploadsConfig struct {
	Dir     string `envconfig:"UPLOADS_DIR" default:"./data/uploads"`
	BaseURL string `envconfig:"UPLOADS_BASE_URL" default:"/uploads"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// DSN returns the MySQL data source name for the members database.
func (m *MembersDBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		m.User, m.Password, m.Host, m.Port, m.Name)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
