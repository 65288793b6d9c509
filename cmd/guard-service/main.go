package main

import (
	"context"
	"fmt"
	"os"

	"github.com/krosec/sec-guard/internal/auth"
	"github.com/krosec/sec-guard/internal/config"
	"github.com/krosec/sec-guard/internal/db"
	"github.com/krosec/sec-guard/internal/dispatch"
	"github.com/krosec/sec-guard/internal/excel"
	httphandler "github.com/krosec/sec-guard/internal/http"
	"github.com/krosec/sec-guard/internal/http/middleware"
	"github.com/krosec/sec-guard/internal/logger"
	"github.com/krosec/sec-guard/internal/mail"
	"github.com/krosec/sec-guard/internal/pdf"
	"github.com/krosec/sec-guard/internal/repository"
	"github.com/krosec/sec-guard/internal/service"
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

	store := repository.NewStore(database)

	mailer := mail.NewMailer(cfg.SMTP)
	dispatcher := dispatch.NewDispatcher(cfg.Dispatch.Workers, cfg.Dispatch.MaxAttempts, mailer, log)
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()
	dispatcher.Start(dispatchCtx)

	contractService := service.NewContractService(store, dispatcher, log)
	notificationService := service.NewNotificationService(store)
	employeeService := service.NewEmployeeService(store)
	reportService := service.NewReportService(store, excel.NewGenerator(), pdf.NewGenerator())

	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	authService := service.NewAuthService(store, issuer)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, notificationService, employeeService, reportService, authService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting guard service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
