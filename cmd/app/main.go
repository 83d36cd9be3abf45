package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"quickship/cmd"
	"quickship/internal/adapters/out/postgres/auditrepo"
	"quickship/internal/adapters/out/postgres/blockrepo"
	"quickship/internal/adapters/out/postgres/orderrepo"
	"quickship/internal/adapters/out/postgres/outboxrepo"
	"quickship/internal/adapters/out/postgres/profilerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := connectDatabase(configs)
	migrateDatabase(db)

	root, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}
	defer func() {
		if closeErr := root.Close(); closeErr != nil {
			logger.Error("Failed to close composition root", "error", closeErr)
		}
	}()

	if err = root.WarmOrderListCache(context.Background()); err != nil {
		log.Fatalf("Failed to warm order list cache: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		TenantID:                goDotEnvVariable("TENANT_ID"),
		RateShopBaseURL:         goDotEnvVariable("RATESHOP_BASE_URL"),
		BookingBaseURL:          goDotEnvVariable("BOOKING_BASE_URL"),
		LabelBaseURL:            goDotEnvVariable("LABEL_BASE_URL"),
		FreightAPIKey:           goDotEnvVariable("FREIGHT_API_KEY"),
		DefaultOriginProfileID:  os.Getenv("DEFAULT_ORIGIN_PROFILE_ID"),
		DefaultPackageProfileID: os.Getenv("DEFAULT_PACKAGE_PROFILE_ID"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaOutboxTopic:        goDotEnvVariable("KAFKA_OUTBOX_TOPIC"),
	}

	if attempts := os.Getenv("LABEL_MAX_ATTEMPTS"); attempts != "" {
		parsed, err := strconv.Atoi(attempts)
		if err != nil {
			log.Fatalf("Invalid LABEL_MAX_ATTEMPTS: %v", err)
		}
		config.LabelMaxAttempts = parsed
	}

	if delay := os.Getenv("LABEL_RETRY_BASE_DELAY"); delay != "" {
		parsed, err := time.ParseDuration(delay)
		if err != nil {
			log.Fatalf("Invalid LABEL_RETRY_BASE_DELAY: %v", err)
		}
		config.LabelRetryBaseDelay = parsed
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

func connectDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	return db
}

func migrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&profilerepo.OriginProfileDTO{},
		&profilerepo.PackageProfileDTO{},
		&blockrepo.BlockedCarrierDTO{},
		&auditrepo.AuditEntryDTO{},
		&outboxrepo.OutboxEventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	root.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
