package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Content store backends
const (
	BackendSanity   = "sanity"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Content    ContentConfig    `yaml:"content"`
	Sanity     SanityConfig     `yaml:"sanity"`
	PostgreSQL PostgreSQLConfig `yaml:"postgresql"`
	SQLite     SQLiteConfig     `yaml:"sqlite"`
	Site       SiteConfig       `yaml:"site"`
	Logging    LoggingConfig    `yaml:"logging"`

	// Warnings lists environment values that were ignored as invalid
	Warnings []string `yaml:"-"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	GinMode         string        `yaml:"gin_mode"`
	AllowedOrigins  string        `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ContentConfig selects and tunes the content store
type ContentConfig struct {
	Backend      string        `yaml:"backend"`
	DocumentType string        `yaml:"document_type"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
	// DetailRequiresPublished applies the published flag to slug lookups too.
	DetailRequiresPublished bool `yaml:"detail_requires_published"`
}

// SanityConfig holds the hosted content lake settings
type SanityConfig struct {
	ProjectID  string `yaml:"project_id"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"api_version"`
	Token      string `yaml:"token"`
	UseCDN     bool   `yaml:"use_cdn"`
	BaseURL    string `yaml:"base_url"` // overrides the project host when set
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string `yaml:"dsn"` // full connection string, preferred when set
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Database           string `yaml:"database"`
	SSLMode            string `yaml:"sslmode"`
	MaxConnections     int    `yaml:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections"`
}

// SQLiteConfig holds the local snapshot database settings
type SQLiteConfig struct {
	Path               string `yaml:"path"`
	MaxConnections     int    `yaml:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections"`
}

// SiteConfig holds presentation settings
type SiteConfig struct {
	Name                string `yaml:"name"`
	FallbackDescription string `yaml:"fallback_description"`
	HeroImageURL        string `yaml:"hero_image_url"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			GinMode:         "release",
			AllowedOrigins:  "*",
			ShutdownTimeout: 10 * time.Second,
		},
		Content: ContentConfig{
			Backend:      BackendSanity,
			DocumentType: "property",
			QueryTimeout: 10 * time.Second,
		},
		Sanity: SanityConfig{
			Dataset:    "production",
			APIVersion: "2024-01-01",
		},
		PostgreSQL: PostgreSQLConfig{
			Host:               "localhost",
			Port:               5432,
			User:               "postgres",
			Database:           "homefinder",
			SSLMode:            "disable",
			MaxConnections:     25,
			MaxIdleConnections: 5,
		},
		SQLite: SQLiteConfig{
			Path:               "homefinder.db",
			MaxConnections:     4,
			MaxIdleConnections: 4,
		},
		Site: SiteConfig{
			Name: "HomeFinder",
			FallbackDescription: "Beautiful property with modern amenities, located in a prime neighborhood " +
				"with easy access to schools, parks, and shopping centers. Features updated kitchen and bathrooms.",
			HeroImageURL: "https://res.cloudinary.com/dqipjpy1w/image/upload/v1754213015/Grange-258Q-Harmony-Lodge-Facade-2-1190x680_honrzy.jpg",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from an optional YAML file, then environment variables
func Load(path string) (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = c.getEnvAsInt("SERVER_PORT", c.Server.Port)
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Server.GinMode = getEnv("GIN_MODE", c.Server.GinMode)
	c.Server.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.ShutdownTimeout = c.getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Content.Backend = strings.ToLower(getEnv("CONTENT_BACKEND", c.Content.Backend))
	c.Content.DocumentType = getEnv("CONTENT_DOCUMENT_TYPE", c.Content.DocumentType)
	c.Content.QueryTimeout = c.getEnvAsDuration("CONTENT_QUERY_TIMEOUT", c.Content.QueryTimeout)
	c.Content.DetailRequiresPublished = c.getEnvAsBool("CONTENT_DETAIL_REQUIRES_PUBLISHED", c.Content.DetailRequiresPublished)

	c.Sanity.ProjectID = getEnv("SANITY_PROJECT_ID", c.Sanity.ProjectID)
	c.Sanity.Dataset = getEnv("SANITY_DATASET", c.Sanity.Dataset)
	c.Sanity.APIVersion = getEnv("SANITY_API_VERSION", c.Sanity.APIVersion)
	c.Sanity.Token = getEnv("SANITY_TOKEN", c.Sanity.Token)
	c.Sanity.UseCDN = c.getEnvAsBool("SANITY_USE_CDN", c.Sanity.UseCDN)
	c.Sanity.BaseURL = getEnv("SANITY_BASE_URL", c.Sanity.BaseURL)

	// DATABASE_URL wins over PG_DSN
	c.PostgreSQL.DSN = getEnv("DATABASE_URL", getEnv("PG_DSN", c.PostgreSQL.DSN))
	c.PostgreSQL.Host = getEnv("PG_HOST", c.PostgreSQL.Host)
	c.PostgreSQL.Port = c.getEnvAsInt("PG_PORT", c.PostgreSQL.Port)
	c.PostgreSQL.User = getEnv("PG_USER", c.PostgreSQL.User)
	c.PostgreSQL.Password = getEnv("PG_PASSWORD", c.PostgreSQL.Password)
	c.PostgreSQL.Database = getEnv("PG_DATABASE", c.PostgreSQL.Database)
	c.PostgreSQL.SSLMode = getEnv("PG_SSLMODE", c.PostgreSQL.SSLMode)
	c.PostgreSQL.MaxConnections = c.getEnvAsInt("PG_MAX_CONNECTIONS", c.PostgreSQL.MaxConnections)
	c.PostgreSQL.MaxIdleConnections = c.getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", c.PostgreSQL.MaxIdleConnections)

	c.SQLite.Path = getEnv("SQLITE_PATH", c.SQLite.Path)
	c.SQLite.MaxConnections = c.getEnvAsInt("SQLITE_MAX_CONNECTIONS", c.SQLite.MaxConnections)
	c.SQLite.MaxIdleConnections = c.getEnvAsInt("SQLITE_MAX_IDLE_CONNECTIONS", c.SQLite.MaxIdleConnections)

	c.Site.Name = getEnv("SITE_NAME", c.Site.Name)
	c.Site.FallbackDescription = getEnv("SITE_FALLBACK_DESCRIPTION", c.Site.FallbackDescription)
	c.Site.HeroImageURL = getEnv("SITE_HERO_IMAGE_URL", c.Site.HeroImageURL)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
}

// Validate checks that the selected backend is fully configured
func (c *Config) Validate() error {
	switch c.Content.Backend {
	case BackendSanity:
		if c.Sanity.ProjectID == "" && c.Sanity.BaseURL == "" {
			return fmt.Errorf("sanity backend requires SANITY_PROJECT_ID")
		}
		if c.Sanity.Dataset == "" {
			return fmt.Errorf("sanity backend requires SANITY_DATASET")
		}
	case BackendPostgres:
		if c.PostgreSQL.DSN == "" && c.PostgreSQL.Host == "" {
			return fmt.Errorf("postgres backend requires DATABASE_URL or PG_HOST")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite backend requires SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown content backend %q (want %s, %s or %s)",
			c.Content.Backend, BackendSanity, BackendPostgres, BackendSQLite)
	}
	if c.Content.DocumentType == "" {
		return fmt.Errorf("content document type must not be empty")
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *Config) getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		c.warnf("invalid integer value %q for %s, using default %d", valueStr, key, defaultValue)
		return defaultValue
	}
	return value
}

func (c *Config) getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		c.warnf("invalid boolean value %q for %s, using default %t", valueStr, key, defaultValue)
		return defaultValue
	}
	return value
}

func (c *Config) getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		c.warnf("invalid duration value %q for %s, using default %s", valueStr, key, defaultValue)
		return defaultValue
	}
	return value
}
