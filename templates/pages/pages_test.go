package pages

import (
	"bytes"
	"context"
	"lawyer_tools/services"
	"lawyer_tools/services/i18n"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, lang string, build func(ctx context.Context) templ.Component) string {
	t.Helper()
	require.NoError(t, i18n.Load())

	ctx := i18n.WithLocale(context.Background(), lang)
	var buf bytes.Buffer
	require.NoError(t, build(ctx).Render(ctx, &buf))
	return buf.String()
}

func TestDateDeltaPage(t *testing.T) {
	t.Run("Result", func(t *testing.T) {
		html := render(t, "de", func(ctx context.Context) templ.Component {
			return DateDelta(ctx, DateDeltaView{Start: "2018-01-01", End: "2018-01-18", Days: 17, Computed: true})
		})
		assert.Contains(t, html, "Anzahl Tage zwischen diesen Daten: 17")
		assert.Contains(t, html, "Neu berechnen")
		assert.Contains(t, html, `/datedelta/pdf?start=2018-01-01&end=2018-01-18`)
		assert.NotContains(t, html, "<form")
	})

	t.Run("FormKeepsRawInput", func(t *testing.T) {
		html := render(t, "de", func(ctx context.Context) templ.Component {
			return DateDelta(ctx, DateDeltaView{Start: "<b>x</b>", End: "2018-01-18", Invalid: true})
		})
		assert.Contains(t, html, "Startdatum")
		assert.Contains(t, html, "Enddatum")
		assert.Contains(t, html, "Abschicken")
		assert.Contains(t, html, `placeholder="2018-01-01"`)
		assert.Contains(t, html, `value="&lt;b&gt;x&lt;/b&gt;"`)
		assert.Contains(t, html, "JJJJ-MM-TT")
	})

	t.Run("NegativeDays", func(t *testing.T) {
		html := render(t, "en", func(ctx context.Context) templ.Component {
			return DateDelta(ctx, DateDeltaView{Start: "2018-01-18", End: "2018-01-01", Days: -17, Computed: true})
		})
		assert.Contains(t, html, "Days between these dates: -17")
	})
}

func TestDashboardPage(t *testing.T) {
	html := render(t, "de", func(ctx context.Context) templ.Component {
		return Dashboard(ctx, DashboardView{Tools: services.Tools})
	})

	for _, tool := range services.Tools {
		assert.Contains(t, html, `href="`+tool.Path()+`"`)
	}
	assert.Contains(t, html, "Mit Legal Drop versenden Sie Ihre Daten")
	assert.Contains(t, html, "Jetzt anmelden")
}

func TestApplicationPage(t *testing.T) {
	legaldrop, ok := services.FindTool("legaldrop")
	require.True(t, ok)
	html := render(t, "de", func(ctx context.Context) templ.Component { return Application(ctx, legaldrop) })
	assert.Contains(t, html, `<iframe class="tool-frame" src="https://legaldrop.lawyer.tools"`)
	assert.Contains(t, html, `height="600"`)

	watchdog, ok := services.FindTool("watchdog")
	require.True(t, ok)
	html = render(t, "en", func(ctx context.Context) templ.Component { return Application(ctx, watchdog) })
	assert.NotContains(t, html, "<iframe")
	assert.Contains(t, html, "Coming soon")
}

func TestGenericPages(t *testing.T) {
	html := render(t, "de", Disclaimer)
	assert.Contains(t, html, "Die LAWYER TOOLS liefern keine rechtlich verbindlichen Ergebnisse")
	assert.Contains(t, html, `href="/agb"`)

	html = render(t, "de", AGB)
	assert.Contains(t, html, "Dokument hier herunterladen")
	assert.Contains(t, html, `href="/agb/download"`)
}

func TestContactPage(t *testing.T) {
	t.Run("FormWithErrors", func(t *testing.T) {
		html := render(t, "de", func(ctx context.Context) templ.Component {
			return Contact(ctx, ContactView{
				Name:             "Anna",
				Email:            "not-an-email",
				FieldErrors:      map[string]string{"email": "contact.errors.email_invalid"},
				CSRFToken:        "tok-123",
				TurnstileSiteKey: "site-key",
				Nonce:            "n0nce",
			})
		})
		assert.Contains(t, html, "Hello")
		assert.Contains(t, html, "Zentralstrasse 47")
		assert.Contains(t, html, "Christian Wengert")
		assert.Contains(t, html, `name="_csrf" value="tok-123"`)
		assert.Contains(t, html, "Bitte geben Sie eine gültige E-Mail-Adresse ein.")
		assert.Contains(t, html, `data-sitekey="site-key"`)
		assert.Contains(t, html, `nonce="n0nce"`)
	})

	t.Run("Success", func(t *testing.T) {
		html := render(t, "en", func(ctx context.Context) templ.Component {
			return Contact(ctx, ContactView{Success: true})
		})
		assert.Contains(t, html, "Thank you! Your message has been sent.")
		assert.NotContains(t, html, "<form")
	})
}

func TestSpeedLimitsPage(t *testing.T) {
	zones := []string{"Innerorts", "Ausserorts", "Autobahn"}

	t.Run("Form", func(t *testing.T) {
		html := render(t, "de", func(ctx context.Context) templ.Component {
			return SpeedLimits(ctx, SpeedLimitsView{Zones: zones, Zone: "Autobahn", NoMatch: true})
		})
		assert.Contains(t, html, `<option value="Autobahn" selected>`)
		assert.Contains(t, html, "kein Eintrag")
	})

	t.Run("ResultWithFine", func(t *testing.T) {
		rule := services.SpeedLimitRule{Zone: "Innerorts", OverspeedFrom: 11, Measure: "Ordnungsbusse", FineCHF: 250}
		html := render(t, "de", func(ctx context.Context) templ.Component {
			return SpeedLimits(ctx, SpeedLimitsView{Zones: zones, Zone: "Innerorts", Speed: "12", Rule: &rule})
		})
		assert.Contains(t, html, "Überschreitung um 12 km/h (Innerorts)")
		assert.Contains(t, html, "CHF 250")
	})

	t.Run("ResultWithoutFine", func(t *testing.T) {
		rule := services.SpeedLimitRule{Zone: "Autobahn", OverspeedFrom: 35, Measure: "Schwere Widerhandlung"}
		html := render(t, "en", func(ctx context.Context) templ.Component {
			return SpeedLimits(ctx, SpeedLimitsView{Speed: "40", Rule: &rule})
		})
		assert.Contains(t, html, "No fixed fine")
	})

	t.Run("Unavailable", func(t *testing.T) {
		html := render(t, "de", func(ctx context.Context) templ.Component {
			return SpeedLimits(ctx, SpeedLimitsView{Unavailable: true})
		})
		assert.Contains(t, html, "Der Datensatz ist derzeit nicht verfügbar")
	})
}
