package pages

import (
	"context"
	"lawyer_tools/services/i18n"
	"lawyer_tools/templates/layouts"
	"lawyer_tools/templates/partials"

	"github.com/a-h/templ"
)

var dateDeltaTemplate = partials.Parse("datedelta", `<section class="app-wrapper">
	<h1><span class="serif">Date</span>Delta</h1>
	{{if .Computed}}
	<div class="result">
		<p class="result-line">{{t .Lang "datedelta.result" "days" .Days}}</p>
		<p class="result-dates">{{.Start}} &rarr; {{.End}}</p>
		<a class="button" href="/datedelta/pdf?start={{.Start}}&end={{.End}}">{{t .Lang "datedelta.download_pdf"}}</a>
		<a href="/datedelta">{{t .Lang "datedelta.recalculate"}}</a>
	</div>
	{{else}}
	<p>{{t .Lang "datedelta.intro"}}</p>
	{{if .Invalid}}<div class="notice error" role="alert">{{t .Lang "datedelta.form.invalid"}}</div>{{end}}
	<form class="tool-form" method="get" action="/datedelta">
		<label for="start">{{t .Lang "datedelta.form.start"}}</label>
		<input id="start" name="start" type="date" placeholder="{{t .Lang "datedelta.form.start_placeholder"}}" value="{{.Start}}">

		<label for="end">{{t .Lang "datedelta.form.end"}}</label>
		<input id="end" name="end" type="date" placeholder="{{t .Lang "datedelta.form.end_placeholder"}}" value="{{.End}}">

		<button class="button" type="submit">{{t .Lang "datedelta.form.submit"}}</button>
	</form>
	{{end}}
</section>
`)

// DateDelta renders the day count when computed, otherwise the form with the raw inputs
func DateDelta(ctx context.Context, view DateDeltaView) templ.Component {
	view.Lang = i18n.GetLocale(ctx)
	return layouts.Base(i18n.T(ctx, "datedelta.title"), templ.FromGoHTML(dateDeltaTemplate, view))
}
