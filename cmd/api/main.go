package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inquirysync/docs"
	"inquirysync/internal/config"
	"inquirysync/internal/database"
	"inquirysync/internal/database/migration"
	"inquirysync/internal/externalapi"
	handlers "inquirysync/internal/http/handler"
	"inquirysync/internal/http/middleware"
	"inquirysync/internal/otel"
	"inquirysync/internal/repository/postgres"
	"inquirysync/internal/service"
	"inquirysync/internal/storage"
	"inquirysync/internal/tracelog"
)

// @title Inquiry Sync API
// @version 1.0
// @description Receives host record events and synchronizes inquiries with the external REST service.
// @BasePath /
// configureSwagger sets the advertised API host once, before the server accepts requests.
// The scheme is left empty so the UI uses the one it was loaded over.
func configureSwagger(host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = []string{}
}

func main() {
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", cfg.Timezone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("failed to shut down tracing: %v", err)
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	// Archiving trace logs is optional; without an endpoint they only go to stdout.
	var objStore storage.Storage
	if cfg.MinIO.Enabled() {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	apiMetrics, err := externalapi.NewMetrics(reg)
	if err != nil {
		log.Fatalf("failed to register external API metrics: %v", err)
	}
	api, err := externalapi.New(cfg.ExternalAPI, externalapi.WithMetrics(apiMetrics))
	if err != nil {
		log.Fatalf("failed to initialize external API client: %v", err)
	}

	opts := service.Options{
		EntityName:     cfg.Host.EntityName,
		PostImageName:  cfg.Host.PostImageName,
		CreateResponse: cfg.ExternalAPI.CreateResponse,
	}
	inquiryRepo := postgres.NewInquiryPostgres(db)

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register HTTP metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:       db,
		Create:   service.NewCreateBridge(inquiryRepo, api, opts),
		Update:   service.NewUpdateBridge(api, opts),
		Archiver: tracelog.NewArchiver(os.Stdout, loc, objStore),
		Guard:    middleware.WebhookKey(cfg.Host.WebhookKey),
	})

	configureSwagger(cfg.AppHost)
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("failed to shut down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
