package pages

import (
	"context"
	"lawyer_tools/services/i18n"
	"lawyer_tools/templates/layouts"
	"lawyer_tools/templates/partials"

	"github.com/a-h/templ"
)

var contactTemplate = partials.Parse("contact", `<section class="contact">
	<h1><span class="serif">{{t .Lang "contact.title_1"}}</span> {{t .Lang "contact.title_2"}}</h1>
	<h2>{{t .Lang "contact.subtitle"}}</h2>
	<h3>codefour gmbh</h3>
	<p>Zentralstrasse 47</p>
	<p>CH-8003 Zürich</p>
	<a href="mailto:info@codefour.ch">info@codefour.ch</a>

	<h4>{{t .Lang "contact.claim"}}</h4>
	<p>{{t .Lang "contact.about"}}</p>

	<h2>{{t .Lang "contact.team_title"}}</h2>
	<div class="team-wrapper">
		{{range .Team}}
		<div class="team-member-box">
			<div class="portrait-image"><img class="image" src="{{.Portrait}}" alt="{{.Name}}"></div>
			<h4>{{.Name}}</h4>
			<p>{{.Title}}</p>
		</div>
		{{end}}
	</div>

	<h2 id="form">{{t .Lang "contact.form.title"}}</h2>
	{{if .Success}}
	<div class="notice success" role="status">{{t .Lang "contact.success"}}</div>
	{{else}}
	{{if .ErrorKey}}<div class="notice error" role="alert">{{t .Lang .ErrorKey}}</div>{{end}}
	<form class="contact-form" method="post" action="/contact#form">
		<input type="hidden" name="_csrf" value="{{.CSRFToken}}">

		<label for="name">{{t .Lang "contact.form.name"}}</label>
		<input id="name" name="name" type="text" maxlength="200" value="{{.Name}}" required>
		{{with index .FieldErrors "name"}}<p class="field-error">{{t $.Lang .}}</p>{{end}}

		<label for="email">{{t .Lang "contact.form.email"}}</label>
		<input id="email" name="email" type="email" value="{{.Email}}" required>
		{{with index .FieldErrors "email"}}<p class="field-error">{{t $.Lang .}}</p>{{end}}

		<label for="message">{{t .Lang "contact.form.message"}}</label>
		<textarea id="message" name="message" rows="6" maxlength="5000" required>{{.Message}}</textarea>
		{{with index .FieldErrors "message"}}<p class="field-error">{{t $.Lang .}}</p>{{end}}

		{{if .TurnstileSiteKey}}
		<div class="cf-turnstile" data-sitekey="{{.TurnstileSiteKey}}"></div>
		<script src="https://challenges.cloudflare.com/turnstile/v0/api.js" nonce="{{.Nonce}}" async defer></script>
		{{end}}

		<button class="button" type="submit">{{t .Lang "contact.form.submit"}}</button>
	</form>
	{{end}}
</section>
`)

// Contact renders the company details, the team and the contact form
func Contact(ctx context.Context, view ContactView) templ.Component {
	view.Lang = i18n.GetLocale(ctx)
	view.Team = team
	return layouts.Base(i18n.T(ctx, "nav.contact"), templ.FromGoHTML(contactTemplate, view))
}
