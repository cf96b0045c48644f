package pages

import (
	"context"
	"lawyer_tools/services/i18n"
	"lawyer_tools/templates/layouts"
	"lawyer_tools/templates/partials"

	"github.com/a-h/templ"
)

type genericView struct {
	Lang string
}

var disclaimerTemplate = partials.Parse("disclaimer", `<section class="app-wrapper">
	<h1 class="serif">{{t .Lang "disclaimer.title"}}</h1>
	<p>{{t .Lang "disclaimer.p1"}}</p>
	<p>{{t .Lang "disclaimer.p2"}}</p>
	<p>{{t .Lang "disclaimer.p3"}}</p>
	<p>{{t .Lang "disclaimer.agb_prefix"}} <a href="/agb">{{t .Lang "disclaimer.agb_link"}}</a></p>
</section>
`)

var agbTemplate = partials.Parse("agb", `<section class="app-wrapper">
	<h1 class="serif">{{t .Lang "agb.title"}}</h1>
	<a class="button" href="/agb/download">{{t .Lang "agb.download"}}</a>
</section>
`)

// Disclaimer renders the liability notice
func Disclaimer(ctx context.Context) templ.Component {
	view := genericView{Lang: i18n.GetLocale(ctx)}
	return layouts.Base(i18n.T(ctx, "disclaimer.title"), templ.FromGoHTML(disclaimerTemplate, view))
}

// AGB renders the terms page with the document download link
func AGB(ctx context.Context) templ.Component {
	view := genericView{Lang: i18n.GetLocale(ctx)}
	return layouts.Base(i18n.T(ctx, "agb.title"), templ.FromGoHTML(agbTemplate, view))
}
