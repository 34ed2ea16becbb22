package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/invoicekit/invoicekit-api/internal/application/invoicing"
	"github.com/invoicekit/invoicekit-api/internal/infrastructure/ingest"
	infrapdf "github.com/invoicekit/invoicekit-api/internal/infrastructure/pdf"
	httpRouter "github.com/invoicekit/invoicekit-api/internal/interfaces/http"
	"github.com/invoicekit/invoicekit-api/pkg/config"
	"github.com/invoicekit/invoicekit-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	readers := invoicing.ReaderSet{
		CSV:  ingest.NewCSVOrderReader(),
		XLSX: ingest.NewXLSXOrderReader(),
	}
	renderer := infrapdf.NewMarotoInvoiceRenderer()

	countUC := invoicing.NewCountUseCase(readers)
	previewUC := invoicing.NewPreviewUseCase(readers, renderer)
	generateUC := invoicing.NewGenerateUseCase(readers, renderer, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.BodyLimit(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "InvoiceKit API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CountUC:    countUC,
		PreviewUC:  previewUC,
		GenerateUC: generateUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
