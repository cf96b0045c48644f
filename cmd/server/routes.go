package main

import (
	"lawyer_tools/config"
	"lawyer_tools/handlers"
	"lawyer_tools/metrics"
	"lawyer_tools/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// registerRoutes wires every route. The auth guard is attached per route
// so unknown paths fall through to the JSON 404 of handlers.ErrorHandler.
func registerRoutes(e *echo.Echo, cfg *config.Config, gatherer prometheus.Gatherer) {
	e.Static("/public", cfg.StaticDir)

	// Public routes
	e.GET("/", handlers.HomeHandler)
	e.GET("/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())
	e.GET("/callback", handlers.CallbackHandler, middleware.LoginRateLimiter.Middleware())
	e.GET("/logout", handlers.LogoutHandler)
	e.GET("/disclaimer", handlers.DisclaimerHandler)
	e.GET("/agb", handlers.AGBHandler)
	e.GET("/agb/download", handlers.AGBDownloadHandler)
	e.GET("/contact", handlers.ContactHandler)
	e.POST("/contact", handlers.ContactSubmitHandler, middleware.ContactFormRateLimiter.Middleware())
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))

	// Protected routes
	requireAuth := middleware.RequireAuth()
	e.GET("/dashboard", handlers.DashboardHandler, requireAuth)
	e.GET("/api/me", handlers.MeHandler, requireAuth)
	e.GET("/datedelta", handlers.DateDeltaHandler, requireAuth)
	e.GET("/datedelta/pdf", handlers.DateDeltaPDFHandler, requireAuth)
	e.GET("/speedlimits", handlers.SpeedLimitsHandler, requireAuth)
	e.GET("/:tool", handlers.ToolHandler, handlers.RequireCatalogTool(), requireAuth)
}
