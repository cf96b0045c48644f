package handlers

import (
	"lawyer_tools/middleware"
	"lawyer_tools/services"
	"lawyer_tools/templates/pages"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler shows the public tool catalog; signed-in users go to the dashboard
func HomeHandler(c echo.Context) error {
	if middleware.GetCurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return render(c, http.StatusOK, pages.Dashboard(c.Request().Context(), pages.DashboardView{
		Tools: services.Tools,
	}))
}

// DashboardHandler lists every tool for the signed-in user
func DashboardHandler(c echo.Context) error {
	return render(c, http.StatusOK, pages.Dashboard(c.Request().Context(), pages.DashboardView{
		User:  middleware.GetCurrentUser(c),
		Tools: services.Tools,
	}))
}
