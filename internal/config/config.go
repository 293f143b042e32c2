package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration shared by the binaries under cmd/.
type Config struct {
	App   *AppConfig
	API   *APIConfig
	Log   *LogConfig
	Mongo *MongoConfig
	MQTT  *MQTTConfig
	Fleet *FleetConfig
}

// AppConfig configures the front-end server.
type AppConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// APIConfig points the front-end at the vehicles API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	// Addr is where cmd/vehicleapi listens.
	Addr string
}

type LogConfig struct {
	Level  string
	Format string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MQTTConfig is disabled when Broker is empty.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
}

type FleetConfig struct {
	Size int
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		App: &AppConfig{
			Addr:            getEnv("APP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		API: &APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8081/api"), "/"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
			Addr:    getEnv("VEHICLE_API_ADDR", ":8081"),
		},
		Log: &LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Mongo: &MongoConfig{
			URI:        getEnv("MONGO_URI", ""),
			Database:   getEnv("MONGO_DB", "fleet"),
			Collection: getEnv("MONGO_COLLECTION", "vehicles"),
		},
		MQTT: &MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", ""),
			ClientID: getEnv("MQTT_CLIENT_ID", "vehicle-api"),
			Topic:    strings.TrimRight(getEnv("MQTT_TOPIC", "fleet/vehicles"), "/"),
		},
		Fleet: &FleetConfig{
			Size: getEnvAsInt("FLEET_SIZE", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default away.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API_BASE_URL %q: scheme must be http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q: missing host", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid API_TIMEOUT %s: must be positive", c.API.Timeout)
	}
	if c.Fleet != nil && c.Fleet.Size < 0 {
		return fmt.Errorf("invalid FLEET_SIZE %d: must not be negative", c.Fleet.Size)
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
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
