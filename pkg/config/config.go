package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tripdesk/pkg/client"
	"tripdesk/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisConnTimeout time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	SeatHoldTTL time.Duration

	PaymentGatewayURL     string
	PaymentGatewayTimeout time.Duration
	ProviderTimeout       time.Duration

	CardFee       int64
	NetbankingFee int64

	SeatFee           int64
	SpecialRequestFee int64

	CorporateFareCap      int64
	CorporateMinAdvance   time.Duration
	CorporateBlockedModes []string

	FullRefundBefore time.Duration
	HalfRefundBefore time.Duration

	BookingEventsTopic    string
	BookingEventsDLQTopic string
	NotifierGroupID       string

	BookingRefKey string

	SMSGatewayURL           string
	SMTPAddr                string
	NotificationFromAddress string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		RedisAddr:        getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword:    getEnvStr(EnvRedisPassword, ""),
		RedisDB:          getEnvNum(EnvRedisDB, DefaultRedisDB),
		RedisConnTimeout: getEnvDuration(EnvRedisConnTimeout, DefaultRedisConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		SeatHoldTTL: getEnvDuration(EnvSeatHoldTTL, DefaultSeatHoldTTL),

		PaymentGatewayURL:     getEnvStr(EnvPaymentGatewayURL, DefaultPaymentGatewayURL),
		PaymentGatewayTimeout: getEnvDuration(EnvPaymentGatewayTimeout, DefaultPaymentGatewayTimeout),
		ProviderTimeout:       getEnvDuration(EnvProviderTimeout, DefaultProviderTimeout),

		CardFee:       int64(getEnvNum(EnvCardFee, DefaultCardFee)),
		NetbankingFee: int64(getEnvNum(EnvNetbankingFee, DefaultNetbankingFee)),

		SeatFee:           int64(getEnvNum(EnvSeatFee, DefaultSeatFee)),
		SpecialRequestFee: int64(getEnvNum(EnvSpecialRequestFee, DefaultSpecialRequestFee)),

		CorporateFareCap:      int64(getEnvNum(EnvCorporateFareCap, DefaultCorporateFareCap)),
		CorporateMinAdvance:   getEnvDuration(EnvCorporateMinAdvance, DefaultCorporateMinAdvance),
		CorporateBlockedModes: getEnvList(EnvCorporateBlockedModes, DefaultCorporateBlockedModes),

		FullRefundBefore: getEnvDuration(EnvFullRefundBefore, DefaultFullRefundBefore),
		HalfRefundBefore: getEnvDuration(EnvHalfRefundBefore, DefaultHalfRefundBefore),

		BookingEventsTopic:    getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),
		BookingEventsDLQTopic: getEnvStr(EnvBookingEventsDLQTopic, DefaultBookingEventsDLQTopic),
		NotifierGroupID:       getEnvStr(EnvNotifierGroupID, DefaultNotifierGroupID),

		BookingRefKey: getEnvStr(EnvBookingRefKey, DefaultBookingRefKey),

		SMSGatewayURL:           getEnvStr(EnvSMSGatewayURL, DefaultSMSGatewayURL),
		SMTPAddr:                getEnvStr(EnvSMTPAddr, DefaultSMTPAddr),
		NotificationFromAddress: getEnvStr(EnvNotificationFromAddress, DefaultNotificationFromAddress),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisConnTimeout)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}

	for name, d := range map[string]time.Duration{
		"MongoConnTimeout":      cfg.MongoConnTimeout,
		"RedisConnTimeout":      cfg.RedisConnTimeout,
		"RateLimitWindow":       cfg.RateLimitWindow,
		"RequestTimeout":        cfg.RequestTimeout,
		"IdempotencyTTL":        cfg.IdempotencyTTL,
		"ReadTimeout":           cfg.ReadTimeout,
		"WriteTimeout":          cfg.WriteTimeout,
		"IdleTimeout":           cfg.IdleTimeout,
		"ShutdownTimeout":       cfg.ShutdownTimeout,
		"SeatHoldTTL":           cfg.SeatHoldTTL,
		"PaymentGatewayTimeout": cfg.PaymentGatewayTimeout,
		"ProviderTimeout":       cfg.ProviderTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.CardFee < 0 || cfg.NetbankingFee < 0 {
		errs = append(errs, "payment method fees cannot be negative")
	}
	if cfg.SeatFee < 0 || cfg.SpecialRequestFee < 0 {
		errs = append(errs, "add-on fees cannot be negative")
	}
	if cfg.CorporateFareCap <= 0 {
		errs = append(errs, fmt.Sprintf("CorporateFareCap must be positive, got: %d", cfg.CorporateFareCap))
	}
	if cfg.HalfRefundBefore >= cfg.FullRefundBefore {
		errs = append(errs, fmt.Sprintf("HalfRefundBefore (%s) must be shorter than FullRefundBefore (%s)", cfg.HalfRefundBefore, cfg.FullRefundBefore))
	}
	if cfg.BookingEventsTopic == "" {
		errs = append(errs, "BookingEventsTopic cannot be empty")
	}
	if cfg.BookingRefKey == "" {
		errs = append(errs, "BookingRefKey cannot be empty")
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"redis_addr", cfg.RedisAddr,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"seat_hold_ttl", cfg.SeatHoldTTL,
		"payment_gateway_url", cfg.PaymentGatewayURL,
		"card_fee", cfg.CardFee,
		"netbanking_fee", cfg.NetbankingFee,
		"corporate_fare_cap", cfg.CorporateFareCap,
		"corporate_min_advance", cfg.CorporateMinAdvance,
		"full_refund_before", cfg.FullRefundBefore,
		"half_refund_before", cfg.HalfRefundBefore,
		"booking_events_topic", cfg.BookingEventsTopic,
	)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
