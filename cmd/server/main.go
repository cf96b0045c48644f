package main

import (
	"context"
	"errors"
	"lawyer_tools/config"
	"lawyer_tools/db"
	"lawyer_tools/handlers"
	"lawyer_tools/metrics"
	"lawyer_tools/middleware"
	"lawyer_tools/models"
	"lawyer_tools/services"
	"lawyer_tools/services/i18n"
	"lawyer_tools/services/jobs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.Load()

	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.AuditLog{}, &models.ContactRequest{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	if err := services.InitializeEncryption(cfg); err != nil {
		log.Fatalf("Failed to initialize encryption: %v", err)
	}
	services.InitializeStorage(cfg)
	services.InitializeOAuth(cfg.Auth0)

	services.InitSecurityMonitor()
	services.Monitor.OnAlert(func(alert services.SecurityAlert) {
		email, err := services.BuildSecurityAlertEmail(cfg.ContactRecipient, alert)
		if err != nil {
			log.Printf("[SECURITY] Failed to build alert email: %v", err)
			return
		}
		services.SendEmailAsync(cfg, email)
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.SetRecorder(metrics.NewCollector(registry))

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := services.LoadSpeedLimits(loadCtx, services.Storage, cfg.SpeedLimitsKey); err != nil {
		log.Printf("[WARNING] Speed limits unavailable until the next reload: %v", err)
	}
	cancelLoad()

	scheduler, err := jobs.StartScheduler(db.DB, cfg)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	middleware.InitAssetVersions(cfg.StaticDir)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Printf("[HTTP] %s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		HSTSMaxAge:         31536000,
	}))
	e.Use(middleware.CSPNonce(services.FrameSources()...))
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))
	e.Use(middleware.LoadUser())
	e.Use(middleware.AuditContext())

	registerRoutes(e, cfg, registry)

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")

	<-scheduler.Stop().Done()
	middleware.LoginRateLimiter.Stop()
	middleware.ContactFormRateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
