package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/config"
	"github.com/oumarbarry/coqdor/internal/repository/mongodb"
	"github.com/oumarbarry/coqdor/internal/repository/sheets"
	"github.com/oumarbarry/coqdor/internal/scheduler"
	"github.com/oumarbarry/coqdor/internal/server/handlers"
	"github.com/oumarbarry/coqdor/internal/server/router"
	inventorysvc "github.com/oumarbarry/coqdor/internal/service/inventory"
	reportingsvc "github.com/oumarbarry/coqdor/internal/service/reporting"
	reviewsvc "github.com/oumarbarry/coqdor/internal/service/reviews"
	roostersvc "github.com/oumarbarry/coqdor/internal/service/roosters"
	salesvc "github.com/oumarbarry/coqdor/internal/service/sales"
	suppliersvc "github.com/oumarbarry/coqdor/internal/service/suppliers"
	"github.com/oumarbarry/coqdor/pkg/clients/identity"
	"github.com/oumarbarry/coqdor/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	identityClient := identity.NewClient(cfg.Identity)

	inventoryRepo := mongodb.NewInventoryRepository(mongoRepo)
	roosterRepo := mongodb.NewRoosterRepository(mongoRepo)

	inventorySvc := inventorysvc.NewService(inventoryRepo, baseLogger.Named("svc.inventory"))
	roosterSvc := roostersvc.NewService(roosterRepo, baseLogger.Named("svc.roosters"))
	saleSvc := salesvc.NewService(mongodb.NewSaleRepository(mongoRepo), roosterRepo, baseLogger.Named("svc.sales"))
	supplierSvc := suppliersvc.NewService(mongodb.NewSupplierRepository(mongoRepo), inventoryRepo, baseLogger.Named("svc.suppliers"))
	reviewSvc := reviewsvc.NewService(mongodb.NewReviewRepository(mongoRepo), baseLogger.Named("svc.reviews"))

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(identityClient, baseLogger.Named("handlers.auth")),
		Inventory: handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory")),
		Roosters:  handlers.NewRoosterHandler(roosterSvc, baseLogger.Named("handlers.roosters")),
		Sales:     handlers.NewSaleHandler(saleSvc, baseLogger.Named("handlers.sales")),
		Suppliers: handlers.NewSupplierHandler(supplierSvc, baseLogger.Named("handlers.suppliers")),
		Reviews:   handlers.NewReviewHandler(reviewSvc, baseLogger.Named("handlers.reviews")),
	}, identityClient, baseLogger.Named("router"))

	// The daily report only runs when a spreadsheet is configured.
	var sched *scheduler.Scheduler
	if cfg.SheetsEnabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}

		reportingSvc := reportingsvc.NewService(inventorySvc, sheetsRepo, baseLogger.Named("svc.reporting"))
		sched = scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Info("sheets export not configured, daily stock report disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
