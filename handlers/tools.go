package handlers

import (
	"lawyer_tools/metrics"
	"lawyer_tools/services"
	"lawyer_tools/templates/pages"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToolHandler renders the application page of a catalog tool
func ToolHandler(c echo.Context) error {
	tool, ok := services.FindTool(c.Param("tool"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "tool not found")
	}

	if native, ok := nativeTools[tool.Slug]; ok {
		return native(c)
	}

	metrics.Get().RecordToolView(tool.Slug)
	return render(c, http.StatusOK, pages.Application(c.Request().Context(), tool))
}

// nativeTools maps the tools implemented by this server to their handlers
var nativeTools = map[string]echo.HandlerFunc{
	"datedelta":   DateDeltaHandler,
	"speedlimits": SpeedLimitsHandler,
}

// RequireCatalogTool answers 404 for slugs outside the catalog before any
// auth check runs, so stray requests like /favicon.ico never reach /login.
func RequireCatalogTool() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := services.FindTool(c.Param("tool")); !ok {
				return echo.NewHTTPError(http.StatusNotFound, "tool not found")
			}
			return next(c)
		}
	}
}
