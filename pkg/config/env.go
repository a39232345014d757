package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr        = "REDIS_ADDR"
	EnvRedisPassword    = "REDIS_PASSWORD"
	EnvRedisDB          = "REDIS_DB"
	EnvRedisConnTimeout = "REDIS_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSeatHoldTTL = "SEAT_HOLD_TTL"

	EnvPaymentGatewayURL     = "PAYMENT_GATEWAY_URL"
	EnvPaymentGatewayTimeout = "PAYMENT_GATEWAY_TIMEOUT"
	EnvProviderTimeout       = "PROVIDER_TIMEOUT"

	EnvCardFee       = "CARD_FEE"
	EnvNetbankingFee = "NETBANKING_FEE"

	EnvSeatFee           = "SEAT_FEE"
	EnvSpecialRequestFee = "SPECIAL_REQUEST_FEE"

	EnvCorporateFareCap        = "CORPORATE_FARE_CAP"
	EnvCorporateMinAdvance     = "CORPORATE_MIN_ADVANCE"
	EnvCorporateBlockedModes   = "CORPORATE_BLOCKED_MODES"
	EnvFullRefundBefore        = "FULL_REFUND_BEFORE"
	EnvHalfRefundBefore        = "HALF_REFUND_BEFORE"
	EnvBookingEventsTopic      = "BOOKING_EVENTS_TOPIC"
	EnvBookingEventsDLQTopic   = "BOOKING_EVENTS_DLQ_TOPIC"
	EnvNotifierGroupID         = "NOTIFIER_GROUP_ID"
	EnvBookingRefKey           = "BOOKING_REF_KEY"
	EnvSMSGatewayURL           = "SMS_GATEWAY_URL"
	EnvSMTPAddr                = "SMTP_ADDR"
	EnvNotificationFromAddress = "NOTIFICATION_FROM_ADDRESS"
)
