package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tripdesk"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr        = "localhost:6379"
	DefaultRedisDB          = 0
	DefaultRedisConnTimeout = 5 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSeatHoldTTL = 10 * time.Minute

	DefaultPaymentGatewayURL     = "http://localhost:9201"
	DefaultPaymentGatewayTimeout = 15 * time.Second
	DefaultProviderTimeout       = 15 * time.Second

	// Flat convenience fees in whole INR. UPI and wallet carry none.
	DefaultCardFee       = 99
	DefaultNetbankingFee = 49

	// Per-unit add-on charges in whole INR.
	DefaultSeatFee           = 75
	DefaultSpecialRequestFee = 50

	DefaultCorporateFareCap    = 15000
	DefaultCorporateMinAdvance = 48 * time.Hour

	// Cancellation refund tiers by time to departure.
	DefaultFullRefundBefore = 24 * time.Hour
	DefaultHalfRefundBefore = 2 * time.Hour

	DefaultBookingEventsTopic    = "booking-events"
	DefaultBookingEventsDLQTopic = "booking-events-dlq"
	DefaultNotifierGroupID       = "tripdesk-notifier"

	// Base64-encoded 256-bit AES key for opaque booking references.
	// Override in any environment that leaves the developer laptop.
	DefaultBookingRefKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

	DefaultSMSGatewayURL           = "http://localhost:9301"
	DefaultSMTPAddr                = "localhost:1025"
	DefaultNotificationFromAddress = "bookings@tripdesk.local"

	DefaultPaginationLimit = 50
)

// DefaultCorporateBlockedModes lists travel modes corporate billing never
// allows without approval.
var DefaultCorporateBlockedModes = []string{"mixed"}
