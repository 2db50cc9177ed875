package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/mamadbah2/salestracker/internal/service/analytics"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMemory  = "memory"
	StoreFile    = "file"
	StoreMongoDB = "mongodb"
	StoreRedis   = "redis"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Store    StoreConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Chrome   ChromeConfig
	Snapshot SnapshotConfig
	Archive  ArchiveConfig
	Sheets   SheetsConfig

	location *time.Location
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// AppConfig holds presentation settings.
type AppConfig struct {
	Timezone       string
	CurrencySymbol string
	LogLevel       string
}

// StoreConfig selects the ledger backend.
type StoreConfig struct {
	Driver string
	Path   string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// RedisConfig holds settings for Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ChromeConfig controls report rasterization.
type ChromeConfig struct {
	RemoteURL     string
	NoSandbox     bool
	RenderTimeout time.Duration
}

// SnapshotConfig holds scheduler-related settings.
type SnapshotConfig struct {
	CronSchedule string
	Period       string
}

// ArchiveConfig points at the S3-compatible bucket receiving snapshots. Empty Bucket disables it.
type ArchiveConfig struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	Prefix       string
	UsePathStyle bool
}

// Enabled reports whether snapshots are archived.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets. Empty SpreadsheetID disables it.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether summaries are published to a spreadsheet.
func (s SheetsConfig) Enabled() bool {
	return s.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when the environment is set directly.
		_ = godotenv.Load()
	}

	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	noSandbox, err := getenvBool("CHROME_NO_SANDBOX", false)
	if err != nil {
		return nil, err
	}
	renderTimeout, err := getenvDuration("RENDER_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	pathStyle, err := getenvBool("S3_USE_PATH_STYLE", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		App: AppConfig{
			Timezone:       getenvWithDefault("TIMEZONE", "Africa/Lagos"),
			CurrencySymbol: getenvWithDefault("CURRENCY_SYMBOL", "₦"),
			LogLevel:       getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getenvWithDefault("STORE_DRIVER", StoreFile)),
			Path:   getenvWithDefault("STORE_PATH", "./data"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "salestracker"),
		},
		Redis: RedisConfig{
			Addr:     getenvWithDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Chrome: ChromeConfig{
			RemoteURL:     os.Getenv("CHROME_REMOTE_URL"),
			NoSandbox:     noSandbox,
			RenderTimeout: renderTimeout,
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON", "0 21 * * *"),
			Period:       getenvWithDefault("SNAPSHOT_PERIOD", string(analytics.PeriodLast7Days)),
		},
		Archive: ArchiveConfig{
			Endpoint:     os.Getenv("S3_ENDPOINT"),
			Region:       getenvWithDefault("S3_REGION", "us-east-1"),
			Bucket:       os.Getenv("S3_BUCKET"),
			AccessKey:    os.Getenv("S3_ACCESS_KEY"),
			SecretKey:    os.Getenv("S3_SECRET_KEY"),
			Prefix:       getenvWithDefault("S3_PREFIX", "snapshots"),
			UsePathStyle: pathStyle,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEETS_RANGE", "Snapshots!A1"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	c.location = loc

	switch c.Store.Driver {
	case StoreMemory:
	case StoreFile:
		if c.Store.Path == "" {
			return errors.New("STORE_PATH must be provided for the file store")
		}
	case StoreMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided for the mongodb store")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided for the mongodb store")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR must be provided for the redis store")
		}
	default:
		return fmt.Errorf("STORE_DRIVER %q is not supported", c.Store.Driver)
	}

	if c.Chrome.RenderTimeout <= 0 {
		return errors.New("RENDER_TIMEOUT must be positive")
	}

	if c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON must be provided")
	}
	if _, err := analytics.ParsePeriod(c.Snapshot.Period); err != nil {
		return fmt.Errorf("SNAPSHOT_PERIOD is invalid: %w", err)
	}

	if c.Archive.Enabled() && (c.Archive.AccessKey == "" || c.Archive.SecretKey == "") {
		return errors.New("S3_ACCESS_KEY and S3_SECRET_KEY must be provided when S3_BUCKET is set")
	}

	if c.Sheets.Enabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_DATABASE_ID is set")
	}

	return nil
}

// Location returns the configured time zone, UTC before Validate succeeds.
func (c *Config) Location() *time.Location {
	if c == nil || c.location == nil {
		return time.UTC
	}
	return c.location
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
