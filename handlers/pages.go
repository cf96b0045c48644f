package handlers

import (
	"errors"
	"lawyer_tools/db"
	"lawyer_tools/middleware"
	"lawyer_tools/models"
	"lawyer_tools/services"
	"lawyer_tools/services/i18n"
	"lawyer_tools/templates/pages"
	"log"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"
)

// agbLinkTTL is the lifetime of a signed download link
const agbLinkTTL = 15 * time.Minute

// DisclaimerHandler renders the disclaimer
func DisclaimerHandler(c echo.Context) error {
	return render(c, http.StatusOK, pages.Disclaimer(c.Request().Context()))
}

// AGBHandler renders the terms page with its download link
func AGBHandler(c echo.Context) error {
	return render(c, http.StatusOK, pages.AGB(c.Request().Context()))
}

// AGBDownloadHandler serves the terms document, through a signed URL when
// the storage backend supports one
func AGBDownloadHandler(c echo.Context) error {
	if services.Storage == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage not configured")
	}
	ctx := c.Request().Context()

	auditDownload := func() {
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
			Action:       models.AuditActionDownload,
			ResourceType: "Document",
			ResourceID:   services.AGBDocumentKey,
			ResourceName: path.Base(services.AGBDocumentKey),
			Description:  "AGB document downloaded",
		})
	}

	signedURL, err := services.Storage.GetSignedURL(ctx, services.AGBDocumentKey, agbLinkTTL)
	if err != nil {
		log.Printf("[WARNING] AGB signed URL: %v", err)
	}
	if signedURL != "" {
		auditDownload()
		return c.Redirect(http.StatusFound, signedURL)
	}

	reader, contentType, err := services.Storage.Get(ctx, services.AGBDocumentKey)
	if err != nil {
		log.Printf("[WARNING] AGB document unavailable: %v", err)
		return echo.NewHTTPError(http.StatusNotFound, i18n.T(ctx, "errors.document_missing"))
	}
	defer reader.Close()

	auditDownload()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+path.Base(services.AGBDocumentKey)+`"`)
	return c.Stream(http.StatusOK, contentType, reader)
}

// ContactHandler renders the empty contact form
func ContactHandler(c echo.Context) error {
	return render(c, http.StatusOK, pages.Contact(c.Request().Context(), contactView(c)))
}

// ContactSubmitHandler stores and forwards a contact request
func ContactSubmitHandler(c echo.Context) error {
	ctx := c.Request().Context()
	cfg := getConfig(c)

	view := contactView(c)
	view.Name = c.FormValue("name")
	view.Email = c.FormValue("email")
	view.Message = c.FormValue("message")

	input := services.ContactInput{
		Name:           view.Name,
		Email:          view.Email,
		Message:        view.Message,
		TurnstileToken: c.FormValue("cf-turnstile-response"),
		IPAddress:      c.RealIP(),
		Lang:           i18n.GetLocale(ctx),
	}
	if user := middleware.GetCurrentUser(c); user != nil {
		input.UserID = user.ID
	}

	request, err := services.SubmitContactRequest(ctx, db.DB, cfg, input)
	if err != nil {
		var validationErr *services.ContactValidationError
		switch {
		case errors.As(err, &validationErr):
			view.FieldErrors = map[string]string{validationErr.Field: validationErr.Key}
			return render(c, http.StatusUnprocessableEntity, pages.Contact(ctx, view))
		case errors.Is(err, services.ErrTurnstileFailed):
			view.ErrorKey = "contact.errors.captcha"
			return render(c, http.StatusBadRequest, pages.Contact(ctx, view))
		default:
			log.Printf("[ERROR] Contact request: %v", err)
			view.ErrorKey = "contact.errors.generic"
			return render(c, http.StatusInternalServerError, pages.Contact(ctx, view))
		}
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionCreate,
		ResourceType: "ContactRequest",
		ResourceID:   request.ID,
		Description:  "Contact request submitted",
		Details:      map[string]interface{}{"email_sent": request.EmailSent},
	})

	return render(c, http.StatusOK, pages.Contact(ctx, pages.ContactView{Success: true}))
}

func contactView(c echo.Context) pages.ContactView {
	return pages.ContactView{
		CSRFToken:        middleware.GetCSRFToken(c),
		TurnstileSiteKey: getConfig(c).TurnstileSiteKey,
		Nonce:            middleware.GetNonce(c.Request().Context()),
	}
}
