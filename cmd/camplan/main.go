package main

import (
	campshandler "camplan/internal/camps/handler"
	campsrepository "camplan/internal/camps/repository"
	campsservice "camplan/internal/camps/service"
	campsvalidator "camplan/internal/camps/validator"
	familyhandler "camplan/internal/family/handler"
	familyrepository "camplan/internal/family/repository"
	familyservice "camplan/internal/family/service"
	familyvalidator "camplan/internal/family/validator"
	"camplan/internal/schedule/handler"
	"camplan/internal/schedule/repository"
	"camplan/internal/schedule/service"
	"camplan/internal/schedule/validator"
	"camplan/pkg/app"
	"camplan/pkg/config"
	"camplan/pkg/contracts"
	"camplan/pkg/events"
)

const ServiceName = "camplan"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting camplan service")
	publisher := initPublisher(cfg)
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg, publisher)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}
	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaBookingTopic)
	return publisher
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	kidRepo := familyrepository.NewMongoKidRepository(cfg)
	tripRepo := familyrepository.NewMongoTripRepository(cfg)
	campRepo := campsrepository.NewMongoCampRepository(cfg)
	sessionRepo := campsrepository.NewMongoSessionRepository(cfg)
	weekRepo := repository.NewMongoWeekRepository(cfg)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	calendarStore := repository.NewMongoCalendarStore(cfg)

	familyValidator := familyvalidator.NewFamilyValidator(cfg.Log)
	campValidator := campsvalidator.NewCampValidator(cfg.Log)
	bookingValidator := validator.NewBookingValidator(cfg.Log)

	weekService := service.NewWeekService(
		weekRepo, bookingRepo, kidRepo, tripRepo, sessionRepo, calendarStore, publisher, cfg,
	)
	bookingService := service.NewBookingService(
		bookingRepo, weekRepo, kidRepo, sessionRepo, campRepo, calendarStore, publisher, bookingValidator, cfg,
	)
	kidService := familyservice.NewKidService(kidRepo, familyValidator, cfg)
	tripService := familyservice.NewTripService(tripRepo, weekService, familyValidator, cfg)
	campService := campsservice.NewCampService(campRepo, sessionRepo, bookingRepo, campValidator, cfg)
	sessionService := campsservice.NewSessionService(sessionRepo, campRepo, bookingRepo, campValidator, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		handler.NewWeekHandler(weekService, cfg.Log),
		handler.NewBookingHandler(bookingService, cfg.Log),
		familyhandler.NewKidHandler(kidService, cfg.Log),
		familyhandler.NewTripHandler(tripService, cfg.Log),
		campshandler.NewCampHandler(campService, cfg.Log),
		campshandler.NewSessionHandler(sessionService, cfg.Log),
	}
}
