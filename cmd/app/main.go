package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shipping/cmd"
	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/audit"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustOpenDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}
	if err = app.Migrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	auditLogger, err := audit.NewProductionLogger()
	if err != nil {
		log.Fatalf("audit logger: %v", err)
	}
	if err = app.RegisterObservers(auditLogger); err != nil {
		log.Fatalf("observers: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("closing observers", "error", closeErr)
		}
	}()

	jobManager, err := app.CreateJobManager(ctx)
	if err != nil {
		log.Fatalf("tariff catalog: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT", "8080"),
		DBHost:                goDotEnvVariable("DB_HOST", "localhost"),
		DBPort:                goDotEnvVariable("DB_PORT", "5432"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME", "shipping"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE", "disable"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaLifecycleTopic:   goDotEnvVariable("KAFKA_SHIPMENT_LIFECYCLE_TOPIC", "shipment.lifecycle"),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		RabbitMQNotifyQueue:   goDotEnvVariable("RABBITMQ_NOTIFICATION_QUEUE", "shipment.notifications"),
		TariffRefreshSchedule: goDotEnvVariable("TARIFF_REFRESH_SCHEDULE", "0 */5 * * * *"),
		LogLevel:              goDotEnvVariable("LOG_LEVEL", "info"),
	}
}

func goDotEnvVariable(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	sqlDB, err := sql.Open("postgres", configs.DSN())
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	return gormDB
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		log.Fatalf("openapi: %v", err)
	}
	validator, err := httpin.RequestValidator(doc)
	if err != nil {
		log.Fatalf("openapi: %v", err)
	}
	e.Use(validator)

	app.CreateServer().RegisterRoutes(e)
	httpin.RegisterDocs(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
