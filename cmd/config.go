package cmd

import "time"

// Config carries the service settings loaded from the environment.
type Config struct {
	HTTPPort string

	// Postgres event journal. When DBHost is empty the service runs on the
	// in-memory store.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Kafka order-changed notifications. Optional; empty host disables
	// publishing.
	KafkaHost              string
	KafkaOrderChangedTopic string

	// Courier booking endpoints. Empty values select the built-in defaults.
	FedExBookingURL     string
	DeliverItBookingURL string
	DefaultBookingURL   string

	// Order runtime tuning.
	SnapshotEvery       uint64
	MaxInflightBookings int
	AskTimeout          time.Duration

	// Passivation of idle order entities.
	PassivationMaxIdle  time.Duration
	PassivationSchedule string
}
