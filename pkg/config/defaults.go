package config

import "time"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

const (
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultStoreDriver       = StoreMongo
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "dinebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultWeatherBaseURL     = "https://api.openweathermap.org"
	DefaultWeatherDefaultCity = "Bangalore,IN"
	DefaultWeatherTimeout     = 10 * time.Second
	DefaultLocation           = "Bangalore, IN"

	DefaultTranscribeModel    = "whisper-1"
	DefaultTranscribeLanguage = "en"
	DefaultMaxAudioSize       = 25 * 1024 * 1024 // 25MB, Whisper upload limit

	DefaultKafkaBookingsTopic = "bookings.events"
	DefaultKafkaGroupID       = "booking-notifier"

	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 45 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBookingsAPIURL = "http://localhost:5000"
)
