package pages

import (
	"context"
	"lawyer_tools/services/i18n"
	"lawyer_tools/templates/layouts"
	"lawyer_tools/templates/partials"

	"github.com/a-h/templ"
)

var speedLimitsTemplate = partials.Parse("speedlimits", `<section class="app-wrapper">
	<h1><span class="serif">Speed</span>Limits</h1>
	{{if .Rule}}
	<div class="result">
		<h2>{{t .Lang "speedlimits.result.heading" "speed" .Speed "zone" .Rule.Zone}}</h2>
		<dl>
			<dt>{{t .Lang "speedlimits.result.measure"}}</dt>
			<dd>{{.Rule.Measure}}</dd>
			<dt>{{t .Lang "speedlimits.result.fine"}}</dt>
			<dd>{{if .Rule.FineCHF}}{{t .Lang "speedlimits.result.fine_value" "fine" (chf .Rule.FineCHF)}}{{else}}{{t .Lang "speedlimits.result.no_fine"}}{{end}}</dd>
		</dl>
		<a href="/speedlimits">{{t .Lang "speedlimits.recalculate"}}</a>
	</div>
	{{else}}
	<p>{{t .Lang "speedlimits.intro"}}</p>
	{{if .Unavailable}}<div class="notice error" role="alert">{{t .Lang "speedlimits.not_loaded"}}</div>{{end}}
	{{if .Invalid}}<div class="notice error" role="alert">{{t .Lang "speedlimits.invalid"}}</div>{{end}}
	{{if .NoMatch}}<div class="notice" role="status">{{t .Lang "speedlimits.result.none"}}</div>{{end}}
	<form class="tool-form" method="get" action="/speedlimits">
		<label for="zone">{{t .Lang "speedlimits.form.zone"}}</label>
		<select id="zone" name="zone">
			{{range .Zones}}<option value="{{.}}"{{if eq . $.Zone}} selected{{end}}>{{.}}</option>{{end}}
		</select>

		<label for="speed">{{t .Lang "speedlimits.form.speed"}}</label>
		<input id="speed" name="speed" type="number" min="1" step="1" placeholder="{{t .Lang "speedlimits.form.speed_placeholder"}}" value="{{.Speed}}">

		<button class="button" type="submit">{{t .Lang "speedlimits.form.submit"}}</button>
	</form>
	{{end}}
</section>
`)

// SpeedLimits renders the matched rule, otherwise the query form
func SpeedLimits(ctx context.Context, view SpeedLimitsView) templ.Component {
	view.Lang = i18n.GetLocale(ctx)
	return layouts.Base(i18n.T(ctx, "speedlimits.title"), templ.FromGoHTML(speedLimitsTemplate, view))
}
