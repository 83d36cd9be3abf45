package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TenantID string

	RateShopBaseURL string
	BookingBaseURL  string
	LabelBaseURL    string
	FreightAPIKey   string

	DefaultOriginProfileID  string
	DefaultPackageProfileID string

	LabelMaxAttempts    int
	LabelRetryBaseDelay time.Duration

	KafkaHost        string
	KafkaOutboxTopic string
}
