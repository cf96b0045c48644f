package handlers

import (
	"fmt"
	"lawyer_tools/db"
	"lawyer_tools/metrics"
	"lawyer_tools/middleware"
	"lawyer_tools/models"
	"lawyer_tools/services"
	"lawyer_tools/templates/pages"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DateDeltaHandler shows the day count between start and end, or the form
// when either date is missing or unparseable
func DateDeltaHandler(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	view := pages.DateDeltaView{Start: start, End: end}

	metrics.Get().RecordToolView("datedelta")

	if days, ok := services.ComputeDelta(start, end); ok {
		metrics.Get().RecordDateDelta(metrics.DateDeltaComputed)
		view.Days = days
		view.Computed = true
	} else if start != "" || end != "" {
		metrics.Get().RecordDateDelta(metrics.DateDeltaAbsent)
		view.Invalid = true
	}

	return render(c, http.StatusOK, pages.DateDelta(c.Request().Context(), view))
}

// DateDeltaPDFHandler renders the calculation as a PDF confirmation
func DateDeltaPDFHandler(c echo.Context) error {
	start, okStart := services.ParseDate(c.QueryParam("start"))
	end, okEnd := services.ParseDate(c.QueryParam("end"))
	if !okStart || !okEnd {
		return c.Redirect(http.StatusSeeOther, "/datedelta")
	}

	ctx := c.Request().Context()
	report := services.DateDeltaReport{
		Start:       start,
		End:         end,
		Days:        services.DaysBetween(start, end),
		GeneratedAt: time.Now(),
	}
	if user := middleware.GetCurrentUser(c); user != nil {
		report.UserName = user.DisplayName()
	}

	body, err := services.RenderDateDeltaReport(ctx, report)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render report")
	}

	options := services.DefaultPDFOptions()
	options.ChromePath = getConfig(c).ChromePath

	began := time.Now()
	pdf, err := services.GeneratePDF(ctx, services.WrapHTMLForPDF(body), options)
	metrics.Get().RecordPDFRender(time.Since(began), err)
	if err != nil {
		log.Printf("[ERROR] DateDelta PDF: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate PDF")
	}

	filename := fmt.Sprintf("datedelta_%s_%s.pdf", start, end)
	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionDownload,
		ResourceType: "DateDelta",
		ResourceName: filename,
		Description:  fmt.Sprintf("DateDelta confirmation %s to %s (%d days)", start, end, report.Days),
	})

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
