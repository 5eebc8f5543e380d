package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"primetime-picks/logging"
	"primetime-picks/primetime"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Auth     AuthConfig     `json:"auth"`
	Cache    CacheConfig    `json:"cache"`
	App      AppConfig      `json:"app"`
}

type ServerConfig struct {
	Port           string   `json:"port"`
	Host           string   `json:"host"`
	BehindProxy    bool     `json:"behind_proxy"`
	Environment    string   `json:"environment"`
	AllowedOrigins []string `json:"allowed_origins"`
}

type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"-"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
	LogDir      string `json:"log_dir"`
	EnableFile  bool   `json:"enable_file"`
}

type AuthConfig struct {
	JWTSecret string        `json:"-"`
	TokenTTL  time.Duration `json:"token_ttl"`
}

// CacheConfig enables the Redis standings cache when RedisURL is set
type CacheConfig struct {
	RedisURL     string        `json:"-"`
	StandingsTTL time.Duration `json:"standings_ttl"`
}

// AppConfig holds the picks and standings settings
type AppConfig struct {
	CurrentSeason int  `json:"current_season"`
	IsDevelopment bool `json:"is_development"`

	// PrimetimeThreshold is the Eastern "HH:MM" from which evening games count
	PrimetimeThreshold string `json:"primetime_threshold"`
	// ExtraHolidays is "MM-DD[:Label],..." added to the standard holidays
	ExtraHolidays  string        `json:"extra_holidays"`
	PickLockBuffer time.Duration `json:"pick_lock_buffer"`

	ResultsJobEnabled    bool          `json:"results_job_enabled"`
	ResultsSchedule      string        `json:"results_schedule"`
	ResultsLookback      time.Duration `json:"results_lookback"`
	RecomputeConcurrency int           `json:"recompute_concurrency"`
	// WatchFinalGames scores games the moment they turn final (needs a replica set)
	WatchFinalGames bool `json:"watch_final_games"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Warnf("Could not load .env file: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			BehindProxy:    getBoolEnv("BEHIND_PROXY", false),
			Environment:    environment,
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "primetime_picks"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", "picks"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
			LogDir:      getEnv("LOG_DIR", "./logs"),
			EnableFile:  getBoolEnv("LOG_FILE", false),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", devJWTSecret),
			TokenTTL:  getDurationEnv("JWT_TTL", 24*time.Hour),
		},
		Cache: CacheConfig{
			RedisURL:     getEnv("REDIS_URL", ""),
			StandingsTTL: getDurationEnv("STANDINGS_CACHE_TTL", 10*time.Minute),
		},
		App: AppConfig{
			CurrentSeason:        getIntEnv("CURRENT_SEASON", 2025),
			IsDevelopment:        strings.ToLower(environment) == "development",
			PrimetimeThreshold:   getEnv("PRIMETIME_THRESHOLD", "19:00"),
			ExtraHolidays:        getEnv("EXTRA_HOLIDAYS", ""),
			PickLockBuffer:       getDurationEnv("PICK_LOCK_BUFFER", 5*time.Minute),
			ResultsJobEnabled:    getBoolEnv("RESULTS_JOB_ENABLED", true),
			ResultsSchedule:      getEnv("RESULTS_SCHEDULE", "0 */5 * * * *"),
			ResultsLookback:      getDurationEnv("RESULTS_LOOKBACK", 72*time.Hour),
			RecomputeConcurrency: getIntEnv("RECOMPUTE_CONCURRENCY", 4),
			WatchFinalGames:      getBoolEnv("WATCH_FINAL_GAMES", false),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks required fields and parses the rule strings once so bad
// values fail at startup.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.JWTSecret == devJWTSecret && !c.App.IsDevelopment {
		return fmt.Errorf("JWT secret must be changed in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT TTL must be positive, got: %s", c.Auth.TokenTTL)
	}

	if c.App.CurrentSeason < 2000 || c.App.CurrentSeason > 2100 {
		return fmt.Errorf("current season out of range, got: %d", c.App.CurrentSeason)
	}
	if _, err := primetime.ParseThreshold(c.App.PrimetimeThreshold); err != nil {
		return err
	}
	if _, err := primetime.ParseFixedHolidays(c.App.ExtraHolidays); err != nil {
		return err
	}
	if c.App.PickLockBuffer < 0 {
		return fmt.Errorf("pick lock buffer cannot be negative, got: %s", c.App.PickLockBuffer)
	}
	if c.App.ResultsJobEnabled {
		if _, err := cron.NewParser(CronParseOptions).Parse(c.App.ResultsSchedule); err != nil {
			return fmt.Errorf("invalid results schedule %q: %w", c.App.ResultsSchedule, err)
		}
	}
	if c.App.RecomputeConcurrency < 1 {
		return fmt.Errorf("recompute concurrency must be at least 1, got: %d", c.App.RecomputeConcurrency)
	}

	return nil
}

// CronParseOptions matches cron.WithSeconds, used by the results job.
const CronParseOptions = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// GetMongoURI returns the MongoDB connection URI
func (c *Config) GetMongoURI() string {
	return c.ToDatabaseConfig().URI()
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (Behind Proxy: %t, Environment: %s)",
		c.GetServerAddress(), c.Server.BehindProxy, c.Server.Environment)
	logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database,
		c.Database.Username, c.Database.Password != "")
	logging.Infof("Cache: Redis=%t, StandingsTTL=%s, CORS origins=%v",
		c.Cache.RedisURL != "", c.Cache.StandingsTTL, c.Server.AllowedOrigins)
	logging.Infof("Logging: Level=%s, Prefix=%s, Color=%t, File=%t",
		c.Logging.Level, c.Logging.Prefix, c.Logging.EnableColor, c.Logging.EnableFile)
	logging.Infof("Picks: Season=%d, Threshold=%s ET, LockBuffer=%s, ExtraHolidays=%q",
		c.App.CurrentSeason, c.App.PrimetimeThreshold, c.App.PickLockBuffer, c.App.ExtraHolidays)
	logging.Infof("Results job: Enabled=%t, Schedule=%q, Lookback=%s, Concurrency=%d, Watch=%t",
		c.App.ResultsJobEnabled, c.App.ResultsSchedule, c.App.ResultsLookback, c.App.RecomputeConcurrency, c.App.WatchFinalGames)
	logging.Info("================================")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated variable, dropping empty items.
func getListEnv(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
