package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStoreDriver       = "STORE_DRIVER"
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvWeatherAPIKey      = "WEATHER_API_KEY"
	EnvWeatherBaseURL     = "WEATHER_BASE_URL"
	EnvWeatherDefaultCity = "WEATHER_DEFAULT_CITY"
	EnvWeatherTimeout     = "WEATHER_TIMEOUT"
	EnvDefaultLocation    = "DEFAULT_LOCATION"

	EnvOpenAIAPIKey       = "OPENAI_API_KEY"
	EnvTranscribeModel    = "TRANSCRIBE_MODEL"
	EnvTranscribeLanguage = "TRANSCRIBE_LANGUAGE"
	EnvMaxAudioSize       = "MAX_AUDIO_SIZE"

	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvKafkaBookingsTopic = "KAFKA_BOOKINGS_TOPIC"
	EnvKafkaGroupID       = "KAFKA_GROUP_ID"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBookingsAPIURL = "BOOKINGS_API_URL"
)
