package config

import (
	"testing"
	"time"

	"dinebook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:              "5000",
		StoreDriver:       StoreMongo,
		MongoURI:          "mongodb://localhost:27017",
		MongoDatabaseName: "dinebook",
		MongoConnTimeout:  time.Second,
		WeatherBaseURL:    DefaultWeatherBaseURL,
		WeatherTimeout:    time.Second,
		DefaultLocation:   DefaultLocation,
		RateLimitRequests: 10,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Hour,
		MaxRequestSize:    1024,
		MaxAudioSize:      1024,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
		Log:               logger.Discard(),
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.StoreDriver = StoreMemory
	cfg.MongoURI = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "70000"
	cfg.MongoURI = "postgres://nope"
	cfg.RequestTimeout = 0
	cfg.KafkaBrokers = []string{"localhost:9092"}
	cfg.KafkaBookingsTopic = ""

	err := cfg.Validate()

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "1. Port must be between 1 and 65535")
	assert.Contains(t, msg, "MongoURI must start with")
	assert.Contains(t, msg, "KafkaBookingsTopic cannot be empty")
	assert.Contains(t, msg, "RequestTimeout must be positive")
}

func TestValidate_UnknownStoreDriver(t *testing.T) {
	cfg := validConfig()
	cfg.StoreDriver = "redis"

	assert.ErrorContains(t, cfg.Validate(), "StoreDriver must be one of")
}

func TestRedactMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb://***:***@db:27017/app", redactMongoURI("mongodb://admin:secret@db:27017/app"))
	assert.Equal(t, "mongodb://db:27017", redactMongoURI("mongodb://db:27017"))
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv(EnvStoreDriver, "MEMORY")
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvKafkaBrokers, " k1:9092, ,k2:9092 ")
	t.Setenv(EnvRequestTimeout, "5s")
	t.Setenv(EnvRateLimitRequests, "not-a-number")
	t.Setenv(EnvLogLevel, "error")

	cfg := Load("test")

	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.False(t, cfg.UsesMongo())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.EventsEnabled())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DefaultRateLimitRequests, cfg.RateLimitRequests)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}
