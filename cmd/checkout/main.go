package main

import (
	checkouthandler "tripdesk/internal/checkout/handler"
	checkoutrepo "tripdesk/internal/checkout/repository"
	checkoutservice "tripdesk/internal/checkout/service"
	checkoutvalidator "tripdesk/internal/checkout/validator"
	giftcardrepo "tripdesk/internal/giftcards/repository"
	giftcardservice "tripdesk/internal/giftcards/service"
	"tripdesk/internal/payments"
	policyhandler "tripdesk/internal/policy/handler"
	policyrepo "tripdesk/internal/policy/repository"
	policyservice "tripdesk/internal/policy/service"
	providerclient "tripdesk/internal/providers/client"
	providerrepo "tripdesk/internal/providers/repository"
	wallethandler "tripdesk/internal/wallet/handler"
	walletrepo "tripdesk/internal/wallet/repository"
	walletservice "tripdesk/internal/wallet/service"
	"tripdesk/pkg/app"
	"tripdesk/pkg/config"
	"tripdesk/pkg/kafka"
	kafka_config "tripdesk/pkg/kafka/config"
	kafka_middleware "tripdesk/pkg/kafka/middleware"
	"tripdesk/pkg/sealer"
)

const ServiceName = "checkout"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Checkout service")

	refSealer, err := sealer.New(cfg.BookingRefKey)
	if err != nil {
		cfg.Log.Fatal("Invalid booking reference key", "error", err)
	}

	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}

	checkoutSvc, walletSvc, policySvc := initServices(cfg, producer)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		checkouthandler.NewHealthHandler(cfg.Client.Mongo.Client, cfg.Client.Redis.Client, cfg.Log),
		checkouthandler.NewCheckoutHandler(checkoutSvc, refSealer, cfg.Log),
		wallethandler.NewWalletHandler(walletSvc, cfg.Log),
		policyhandler.NewApprovalHandler(policySvc, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, producer *kafka.Producer) (checkoutservice.CheckoutService, walletservice.WalletService, policyservice.PolicyService) {
	walletSvc := walletservice.NewWalletService(walletrepo.NewMongoWalletRepository(cfg), cfg)
	giftCardSvc := giftcardservice.NewGiftCardService(giftcardrepo.NewMongoGiftCardRepository(cfg), cfg)
	policySvc := policyservice.NewPolicyService(policyrepo.NewMongoApprovalRepository(cfg), cfg)

	checkoutSvc := checkoutservice.NewCheckoutService(checkoutservice.Deps{
		Cfg:       cfg,
		Sessions:  checkoutrepo.NewMongoSessionRepository(cfg),
		Bookings:  checkoutrepo.NewMongoBookingRepository(cfg),
		Seats:     checkoutrepo.NewRedisSeatHoldRepository(cfg),
		Promos:    checkoutrepo.NewMongoPromoRepository(cfg),
		Wallet:    walletSvc,
		GiftCards: giftCardSvc,
		Policy:    policySvc,
		Gateway:   payments.NewHTTPGateway(cfg),
		Provider:  providerclient.NewHTTPConfirmationClient(providerrepo.NewMongoProviderRepository(cfg), cfg),
		Events:    checkoutservice.NewKafkaEventPublisher(producer, ServiceName),
		Validator: checkoutvalidator.NewCheckoutValidator(cfg.Log),
	})

	cfg.Log.Info("Checkout service initialized", "database", cfg.MongoDatabaseName)
	return checkoutSvc, walletSvc, policySvc
}
