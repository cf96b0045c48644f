package partials

import (
	"fmt"
	"html/template"
	"lawyer_tools/services/i18n"
	"time"
)

// Funcs is shared by every page template
var Funcs = template.FuncMap{
	"t":    translate,
	"year": func() int { return time.Now().Year() },
	"chf":  formatCHF,
}

// Parse builds a page template with the shared helpers; it panics on syntax errors
func Parse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(Funcs).Parse(text))
}

// translate looks up key for lang; pairs are placeholder names and values:
// {{t .Lang "datedelta.result" "days" .Days}}
func translate(lang, key string, pairs ...interface{}) string {
	if len(pairs) == 0 {
		return i18n.Translate(lang, key)
	}
	args := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		args[fmt.Sprint(pairs[i])] = pairs[i+1]
	}
	return i18n.Translate(lang, key, args)
}

// formatCHF formats whole francs with the Swiss thousands separator
func formatCHF(amount int) string {
	s := fmt.Sprintf("%d", amount)
	if amount < 0 {
		return "-" + formatCHF(-amount)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "'" + s[i:]
	}
	return s
}
