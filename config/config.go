package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AuthModeFirebase = "firebase"
	AuthModeDev      = "dev"

	StoreFirestore = "firestore"
	StoreRedis     = "redis"
	StorePostgres  = "postgres"
	StoreMongo     = "mongo"
)

type Config struct {
	Server    ServerConfig
	Firebase  FirebaseConfig
	Store     StoreConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Reconcile ReconcileConfig
	App       AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type FirebaseConfig struct {
	AuthMode        string
	CredentialsPath string
	ProjectID       string
}

type StoreConfig struct {
	Backend string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
}

type MongoConfig struct {
	URI      string
	Database string
}

// ReconcileConfig holds the cron schedule for the property list repair job.
// An empty schedule disables the job.
type ReconcileConfig struct {
	Schedule string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
	SentryDSN   string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5001"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Firebase: FirebaseConfig{
			AuthMode:        getEnv("AUTH_MODE", AuthModeFirebase),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", StoreFirestore),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 0),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "listings"),
		},
		Reconcile: ReconcileConfig{
			Schedule: getEnv("RECONCILE_SCHEDULE", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "property-listing-backend"),
			SentryDSN:   getEnv("SENTRY_DSN", ""),
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

	switch strings.ToLower(c.App.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.App.LogLevel)
	}

	switch c.Firebase.AuthMode {
	case AuthModeFirebase:
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_MODE=%s", AuthModeFirebase)
		}
	case AuthModeDev:
		if c.App.Environment == "production" {
			return fmt.Errorf("AUTH_MODE=%s is not allowed in production", AuthModeDev)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Firebase.AuthMode)
	}

	switch c.Store.Backend {
	case StoreFirestore:
		if c.Firebase.CredentialsPath == "" && os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH or FIRESTORE_EMULATOR_HOST is required for the firestore store")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	case StorePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required")
		}
	case StoreMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	return nil
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
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
