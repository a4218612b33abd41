package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/Aashish23092/tds-challan-extractor/config"
	"github.com/Aashish23092/tds-challan-extractor/handler"
	"github.com/Aashish23092/tds-challan-extractor/logger"
	"github.com/Aashish23092/tds-challan-extractor/middleware"
	"github.com/Aashish23092/tds-challan-extractor/service"
)

func main() {
	configFile := flag.String("config", "", "optional config file (yaml, json, toml)")
	flag.Parse()

	// Initialize configuration
	cfg := config.LoadConfig(*configFile)
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor(cfg.StrictPDFValidation)

	// Initialize service layer
	challanService := service.NewChallanService(pdfProcessor, service.ChallanServiceConfig{
		DocumentTimeout: cfg.DocumentTimeout,
		Workers:         cfg.Workers,
	}, logger.Component("challan"))
	exporter := service.NewXLSXExporter(logger.Component("export"))

	// Initialize handler layer
	challanHandler := handler.NewChallanHandler(challanService, exporter, cfg.ExportFilename, logger.Component("http"))

	router := handler.NewRouter(challanHandler, handler.RouterOptions{
		MaxMultipartMemory: cfg.MaxUploadBytes,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		Limiter:            middleware.NewLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	})

	// Start server
	log.Info("starting TDS Challan Extractor", "port", cfg.ServerPort, "workers", cfg.Workers, "document_timeout", cfg.DocumentTimeout)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
