package pages

import (
	"context"
	"lawyer_tools/services"
	"lawyer_tools/services/i18n"
	"lawyer_tools/templates/layouts"
	"lawyer_tools/templates/partials"

	"github.com/a-h/templ"
)

var applicationTemplate = partials.Parse("application", `<section class="app-wrapper">
	<h1><span class="serif">{{.Tool.Title1}}</span>{{.Tool.Title2}}</h1>
	<p class="lead">{{t .Lang .Tool.ShortTextKey}}</p>
	{{if eq .Tool.Kind "iframe"}}
	<iframe class="tool-frame" src="{{.Tool.IframeSrc}}" width="100%" height="{{.Tool.IframeHeight}}" title="{{.Tool.Title}}" loading="lazy"></iframe>
	<p><a href="{{.Tool.IframeSrc}}" target="_blank" rel="noopener">{{t .Lang "tools.open_external"}}</a></p>
	{{else}}
	<div class="placeholder">
		<h2>{{t .Lang "tools.coming_soon_title"}}</h2>
		<p>{{t .Lang "tools.coming_soon"}}</p>
	</div>
	{{end}}
	<p><a href="/dashboard">{{t .Lang "tools.back"}}</a></p>
</section>
`)

// Application renders an iframe tool or the placeholder of an unreleased one
func Application(ctx context.Context, tool services.Tool) templ.Component {
	view := ApplicationView{Lang: i18n.GetLocale(ctx), Tool: tool}
	return layouts.Base(tool.Title(), templ.FromGoHTML(applicationTemplate, view))
}
