package main

import (
	"fmt"
	"os"

	"github.com/nurpe/trialops/internal/config"
	"github.com/nurpe/trialops/internal/db"
	"github.com/nurpe/trialops/internal/excel"
	httphandler "github.com/nurpe/trialops/internal/http"
	"github.com/nurpe/trialops/internal/logger"
	"github.com/nurpe/trialops/internal/pdf"
	"github.com/nurpe/trialops/internal/repository"
	"github.com/nurpe/trialops/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	invoiceRepo := repository.NewInvoiceRepository(database)

	dashboardService := service.NewDashboardService(contractRepo, invoiceRepo, pdf.NewGenerator())
	registryService := service.NewRegistryService(contractRepo, invoiceRepo, excel.NewGenerator())

	handler := httphandler.NewHandler(dashboardService, registryService, log)
	router := httphandler.NewRouter(handler, cfg.HTTP.AllowedOrigins, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting trialops dashboard service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
