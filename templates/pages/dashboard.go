package pages

import (
	"context"
	"lawyer_tools/services/i18n"
	"lawyer_tools/templates/layouts"
	"lawyer_tools/templates/partials"

	"github.com/a-h/templ"
)

var dashboardTemplate = partials.Parse("dashboard", `<section class="hero">
	<h1 class="serif">{{t .Lang "home.title"}}</h1>
	<p>{{t .Lang "home.subtitle"}}</p>
	{{if .User}}
	<p class="greeting">{{t .Lang "dashboard.greeting" "name" .User.DisplayName}}</p>
	{{else}}
	<p>{{t .Lang "home.login_hint"}}</p>
	<a class="button" href="/login">{{t .Lang "home.login_button"}}</a>
	{{end}}
</section>
<h2>{{t .Lang "dashboard.title"}}</h2>
<div class="tool-grid">
	{{range .Tools}}
	<article class="tool-card tool-{{.Kind}}" id="tool-{{.Slug}}">
		<h3><span class="serif">{{.Title1}}</span>{{.Title2}}</h3>
		<p>{{t $.Lang .ShortTextKey}}</p>
		<details>
			<summary>{{t $.Lang "dashboard.more"}}</summary>
			<h4>{{t $.Lang .MoreTitleKey}}</h4>
			<p>{{t $.Lang .MoreContentKey}}</p>
		</details>
		<a class="button" href="{{.Path}}">{{t $.Lang "dashboard.open"}}</a>
	</article>
	{{end}}
</div>
`)

// Dashboard renders the tool grid; a nil user gets the login call to action
func Dashboard(ctx context.Context, view DashboardView) templ.Component {
	view.Lang = i18n.GetLocale(ctx)
	return layouts.Base(i18n.T(ctx, "dashboard.title"), templ.FromGoHTML(dashboardTemplate, view))
}
