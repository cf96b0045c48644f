package handlers

import (
	"lawyer_tools/metrics"
	"lawyer_tools/services"
	"lawyer_tools/templates/pages"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// SpeedLimitsHandler looks up the measure for an overspeed in a zone
func SpeedLimitsHandler(c echo.Context) error {
	zone := strings.TrimSpace(c.QueryParam("zone"))
	speedText := strings.TrimSpace(c.QueryParam("speed"))
	view := pages.SpeedLimitsView{Zone: zone, Speed: speedText}

	metrics.Get().RecordToolView("speedlimits")

	table, err := services.CurrentSpeedLimits()
	if err != nil {
		view.Unavailable = true
		view.Zones = services.NewSpeedLimitTable(services.DefaultSpeedLimitRules).Zones()
		return render(c, http.StatusOK, pages.SpeedLimits(c.Request().Context(), view))
	}
	view.Zones = table.Zones()

	if zone == "" && speedText == "" {
		return render(c, http.StatusOK, pages.SpeedLimits(c.Request().Context(), view))
	}

	speed, err := strconv.Atoi(speedText)
	if err != nil || speed <= 0 || zone == "" {
		view.Invalid = true
		return render(c, http.StatusOK, pages.SpeedLimits(c.Request().Context(), view))
	}

	if rule, ok := table.Lookup(zone, speed); ok {
		view.Rule = &rule
	} else {
		view.NoMatch = true
	}
	return render(c, http.StatusOK, pages.SpeedLimits(c.Request().Context(), view))
}
