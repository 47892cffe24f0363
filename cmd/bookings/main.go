package main

import (
	"context"

	"dinebook/internal/bookings/events"
	"dinebook/internal/bookings/handler"
	"dinebook/internal/bookings/repository"
	"dinebook/internal/bookings/service"
	"dinebook/internal/bookings/validator"
	voicehandler "dinebook/internal/voice/handler"
	"dinebook/internal/voice/transcriber"
	"dinebook/internal/weather"
	"dinebook/pkg/app"
	"dinebook/pkg/config"
	"dinebook/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Bookings service")
	repo, store := initStore(cfg)
	publisher := initPublisher(cfg)
	bookingService := initServices(cfg, repo, publisher)

	stt := transcriber.NewWhisper(transcriber.Config{
		APIKey:   cfg.OpenAIAPIKey,
		Model:    cfg.TranscribeModel,
		Language: cfg.TranscribeLanguage,
		Timeout:  cfg.WriteTimeout,
	}, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHealthHandler(store, cfg.Log),
		handler.NewBookingHandler(bookingService, cfg.Log),
		voicehandler.NewTranscribeHandler(stt, cfg.Log),
		voicehandler.NewDialogueHandler(bookingService, cfg.Log),
	)
	serverApp.OnShutdown(publisher)
	serverApp.Run()

	cfg.GracefulShutdown()
}

func initStore(cfg *config.Config) (repository.BookingRepository, handler.Pinger) {
	if !cfg.UsesMongo() {
		cfg.Log.Warn("Using in-memory booking store, bookings are lost on restart")
		return repository.NewMemoryBookingRepository(), nil
	}

	cfg.SetMongo()
	ping := handler.PingerFunc(func(ctx context.Context) error {
		return cfg.Client.Mongo.Ping(ctx, nil)
	})
	return repository.NewMongoBookingRepository(cfg), ping
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NewNoopPublisher()
	}

	producer, err := kafka.NewProducer(kafka.DefaultOptions(cfg.KafkaBrokers, cfg.Log), cfg.KafkaBookingsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Booking events enabled", "topic", cfg.KafkaBookingsTopic, "brokers", cfg.KafkaBrokers)
	return events.NewKafkaPublisher(producer)
}

func initServices(cfg *config.Config, repo repository.BookingRepository, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	weatherClient := weather.NewClient(weather.Config{
		APIKey:      cfg.WeatherAPIKey,
		BaseURL:     cfg.WeatherBaseURL,
		DefaultCity: cfg.WeatherDefaultCity,
		Timeout:     cfg.WeatherTimeout,
	}, cfg.Log)

	bookingService := service.NewBookingService(
		repo,
		bookingValidator,
		weatherClient,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "store", cfg.StoreDriver, "database", cfg.MongoDatabaseName)
	return bookingService
}
