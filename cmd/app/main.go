package main

import (
	"fmt"
	"fulfillment/cmd"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("failed to build composition root: %v", err)
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		FedExBookingURL:        goDotEnvVariable("FEDEX_BOOKING_URL"),
		DeliverItBookingURL:    goDotEnvVariable("DELIVERIT_BOOKING_URL"),
		DefaultBookingURL:      goDotEnvVariable("DEFAULT_BOOKING_URL"),
		SnapshotEvery:          uintVariable("SNAPSHOT_EVERY"),
		MaxInflightBookings:    intVariable("MAX_INFLIGHT_BOOKINGS"),
		AskTimeout:             durationVariable("ASK_TIMEOUT"),
		PassivationMaxIdle:     durationVariable("PASSIVATION_MAX_IDLE"),
		PassivationSchedule:    goDotEnvVariable("PASSIVATION_SCHEDULE"),
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	if config.PassivationSchedule == "" {
		config.PassivationSchedule = "0 * * * * *"
	}
	if config.PassivationMaxIdle == 0 {
		config.PassivationMaxIdle = 30 * time.Minute
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// uintVariable parses an optional unsigned integer setting. Zero selects the
// runtime default.
func uintVariable(key string) uint64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid value for %s: %v", key, err)
	}
	return value
}

func intVariable(key string) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("invalid value for %s: %v", key, err)
	}
	return value
}

func durationVariable(key string) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("invalid value for %s: %v", key, err)
	}
	return value
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
