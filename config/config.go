package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"voice-shopping-assistant/logger"
)

// List store backends
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all process settings read from the environment
type Config struct {
	Env          string
	Port         string
	ClientOrigin string
	LogLevel     string

	ListStore    string
	DatabaseURL  string
	StoreTimeout time.Duration

	DialogflowProjectID string
	LanguageCode        string
	CredentialsJSON     string
	CredentialsFile     string
	ClassifierTimeout   time.Duration
}

// LoadDotEnv loads .env outside production.
// Values in the file override the system environment.
func LoadDotEnv(path string) {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(path); err != nil {
		logger.S().Warnf("⚠️  .env file not found at %s, using system environment variables: %v", path, err)
		return
	}
	logger.S().Infof("✓ Loaded environment variables from %s", path)
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:                 getEnv("ENV", "development"),
		Port:                strings.TrimPrefix(getEnv("PORT", "5000"), ":"),
		ClientOrigin:        getEnv("CLIENT_ORIGIN", "*"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DatabaseURL:         databaseURL(),
		DialogflowProjectID: os.Getenv("DIALOGFLOW_PROJECT_ID"),
		LanguageCode:        getEnv("DEFAULT_LANGUAGE_CODE", "en-US"),
		CredentialsFile:     os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}

	var err error
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.ClassifierTimeout, err = getDuration("CLASSIFIER_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	defaultStore := StoreMemory
	if cfg.DatabaseURL != "" {
		defaultStore = StorePostgres
	}
	cfg.ListStore = strings.ToLower(getEnv("LIST_STORE", defaultStore))
	if cfg.ListStore != StorePostgres && cfg.ListStore != StoreMemory {
		return nil, fmt.Errorf("LIST_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.ListStore)
	}

	cfg.CredentialsJSON, err = credentialsJSON(cfg.DialogflowProjectID)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether internal error details may be exposed
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// HasClassifierCredentials reports whether the external classifier can be built
func (c *Config) HasClassifierCredentials() bool {
	return c.DialogflowProjectID != "" && (c.CredentialsJSON != "" || c.CredentialsFile != "")
}

// databaseURL prefers DATABASE_URL and otherwise builds a DSN from DB_* variables
func databaseURL() string {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, getEnv("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), dbname, getEnv("DB_SSLMODE", "disable"))
}

// credentialsJSON resolves service account JSON from the environment.
// GOOGLE_APPLICATION_CREDENTIALS_JSON wins; otherwise a key is assembled
// from DIALOGFLOW_CLIENT_EMAIL and DIALOGFLOW_PRIVATE_KEY.
func credentialsJSON(projectID string) (string, error) {
	if raw := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"); raw != "" {
		return raw, nil
	}

	email := os.Getenv("DIALOGFLOW_CLIENT_EMAIL")
	key := os.Getenv("DIALOGFLOW_PRIVATE_KEY")
	if email == "" || key == "" {
		return "", nil
	}

	// Keys pasted into env files usually carry literal \n sequences
	key = strings.ReplaceAll(key, `\n`, "\n")

	data, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   projectID,
		"client_email": email,
		"private_key":  key,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return "", fmt.Errorf("failed to build service account credentials: %w", err)
	}
	return string(data), nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
