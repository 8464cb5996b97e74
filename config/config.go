package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

const defaultAllowedOrigins = "http://localhost:5173,https://portfolio-seven-rust-4cu9pywf9f.vercel.app"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	EnableMessages bool
	NotFoundStatus int
}

type DatabaseConfig struct {
	Driver      string
	URI         string
	User        string
	Password    string
	ClusterHost string
	Name        string
	DSN         string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
			EnableMessages: getEnvAsBool("ENABLE_MESSAGES", true),
			NotFoundStatus: getEnvAsInt("NOT_FOUND_STATUS", 200),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", DriverMongo)),
			URI:         getEnv("MONGODB_URI", ""),
			User:        getEnv("DB_USER", ""),
			Password:    getEnv("DB_PASS", ""),
			ClusterHost: getEnv("MONGODB_CLUSTER_HOST", "cluster0.mongodb.net"),
			Name:        getEnv("DB_NAME", "portfolioDB"),
			DSN:         getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	for _, o := range c.Server.AllowedOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS origin %q must start with http:// or https://", o)
		}
	}

	if c.Server.NotFoundStatus != 200 && c.Server.NotFoundStatus != 404 {
		return fmt.Errorf("NOT_FOUND_STATUS must be 200 or 404, got %d", c.Server.NotFoundStatus)
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" && (c.Database.User == "" || c.Database.Password == "") {
			return fmt.Errorf("MONGODB_URI or both DB_USER and DB_PASS are required")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres driver")
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Database.Driver)
	}

	return nil
}

// MongoURI returns MONGODB_URI verbatim, or the cluster template filled with
// the escaped credentials.
func (d DatabaseConfig) MongoURI() string {
	if d.URI != "" {
		return d.URI
	}
	return fmt.Sprintf(
		"mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.ClusterHost,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Bool("default", defaultValue).Msg("invalid boolean, using default")
		return defaultValue
	}

	return value
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	out := make([]string, 0, 2)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
