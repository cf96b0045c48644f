package layouts

import (
	"context"
	"html/template"
	"io"
	"lawyer_tools/middleware"
	"lawyer_tools/models"
	"lawyer_tools/services/i18n"
	"lawyer_tools/templates/partials"

	"github.com/a-h/templ"
)

type baseData struct {
	Title      string
	Lang       string
	Nonce      string
	User       *models.User
	CSSVersion string
	JSVersion  string
	Content    template.HTML
}

var baseTemplate = partials.Parse("base", `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>{{.Title}} | {{t .Lang "app.name"}}</title>
	<link rel="icon" href="/public/images/favicon.png">
	<link rel="stylesheet" href="/public/css/style.css?v={{.CSSVersion}}">
	<script src="/public/js/app.js?v={{.JSVersion}}" nonce="{{.Nonce}}" defer></script>
</head>
<body>
	<header class="navbar">
		<a class="brand" href="{{if .User}}/dashboard{{else}}/{{end}}">{{t .Lang "app.name"}}</a>
		<nav class="nav-links">
			<a href="{{if .User}}/dashboard{{else}}/{{end}}">{{t .Lang "nav.tools"}}</a>
			<a href="/disclaimer">{{t .Lang "nav.disclaimer"}}</a>
			<a href="/agb">{{t .Lang "nav.agb"}}</a>
			<a href="/contact">{{t .Lang "nav.contact"}}</a>
			{{if .User}}
			<a class="nav-auth" href="/logout">{{t .Lang "nav.logout"}}</a>
			{{if .User.Picture}}<img class="avatar" src="{{.User.Picture}}" alt="{{t .Lang "nav.avatar_alt" "name" .User.DisplayName}}">{{end}}
			{{else}}
			<a class="nav-auth" href="/login">{{t .Lang "nav.login"}}</a>
			{{end}}
			<span class="lang-switch" aria-label="{{t .Lang "nav.language"}}">
				<a href="?lang=de"{{if eq .Lang "de"}} class="active"{{end}}>DE</a>
				<a href="?lang=en"{{if eq .Lang "en"}} class="active"{{end}}>EN</a>
			</span>
		</nav>
	</header>
	<main class="page">{{.Content}}</main>
	<footer class="footer">
		<span>&copy; {{year}} codefour gmbh</span>
		<span>{{t .Lang "app.footer"}}</span>
		<a href="/disclaimer">{{t .Lang "nav.disclaimer"}}</a>
	</footer>
</body>
</html>
`)

// Base wraps a page component in the site chrome. The language, CSP nonce
// and signed-in user are read from the request context.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := templ.ToGoHTML(ctx, content)
		if err != nil {
			return err
		}

		return baseTemplate.Execute(w, baseData{
			Title:      title,
			Lang:       i18n.GetLocale(ctx),
			Nonce:      middleware.GetNonce(ctx),
			User:       middleware.UserFromContext(ctx),
			CSSVersion: middleware.GetCSSVersion(ctx),
			JSVersion:  middleware.GetAppJSVersion(ctx),
			Content:    body,
		})
	})
}
