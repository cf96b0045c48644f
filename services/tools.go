package services

import (
	"net/url"
)

// ToolKind says how a tool page renders its content
type ToolKind string

const (
	ToolKindIframe      ToolKind = "iframe"      // embeds an external app
	ToolKindNative      ToolKind = "native"      // implemented by this server
	ToolKindPlaceholder ToolKind = "placeholder" // announced, not yet available
)

// Tool is one entry of the dashboard catalog.
// Texts live in the locale files under tools.<slug>.*
type Tool struct {
	Slug         string
	Title1       string
	Title2       string
	Kind         ToolKind
	IframeSrc    string
	IframeHeight int
}

// Path is the tool's route
func (t Tool) Path() string { return "/" + t.Slug }

// Title joins both title parts
func (t Tool) Title() string { return t.Title1 + t.Title2 }

func (t Tool) ShortTextKey() string   { return "tools." + t.Slug + ".short_text" }
func (t Tool) MoreTitleKey() string   { return "tools." + t.Slug + ".more_title" }
func (t Tool) MoreContentKey() string { return "tools." + t.Slug + ".more_content" }

// Tools is the catalog in dashboard order
var Tools = []Tool{
	{Slug: "legaldrop", Title1: "Legal", Title2: "Drop", Kind: ToolKindIframe, IframeSrc: "https://legaldrop.lawyer.tools", IframeHeight: 600},
	{Slug: "datedelta", Title1: "Date", Title2: "Delta", Kind: ToolKindNative},
	{Slug: "duedate", Title1: "Due", Title2: "Date", Kind: ToolKindPlaceholder},
	{Slug: "speedlimits", Title1: "Speed", Title2: "Limits", Kind: ToolKindNative},
	{Slug: "visiblearticle", Title1: "Visible", Title2: "Article", Kind: ToolKindIframe, IframeSrc: "https://va.lawyer.tools", IframeHeight: 1024},
	{Slug: "founderbot", Title1: "Founder", Title2: "Bot", Kind: ToolKindIframe, IframeSrc: "https://gr.lawyer.tools", IframeHeight: 1024},
	{Slug: "flightdelay", Title1: "Flight", Title2: "Delay", Kind: ToolKindPlaceholder},
	{Slug: "highdrive", Title1: "High", Title2: "Drive", Kind: ToolKindPlaceholder},
	{Slug: "labourlaw", Title1: "Labour", Title2: "Law", Kind: ToolKindPlaceholder},
	{Slug: "shabscanner", Title1: "SHAB", Title2: "Scanner", Kind: ToolKindPlaceholder},
	{Slug: "watchdog", Title1: "Watch", Title2: "Dog", Kind: ToolKindPlaceholder},
}

// FindTool looks a tool up by slug
func FindTool(slug string) (Tool, bool) {
	for _, t := range Tools {
		if t.Slug == slug {
			return t, true
		}
	}
	return Tool{}, false
}

// FrameSources returns the distinct origins of the iframe tools, for the CSP frame-src directive
func FrameSources() []string {
	seen := make(map[string]bool)
	var sources []string
	for _, t := range Tools {
		if t.Kind != ToolKindIframe {
			continue
		}
		u, err := url.Parse(t.IframeSrc)
		if err != nil || u.Host == "" {
			continue
		}
		origin := u.Scheme + "://" + u.Host
		if !seen[origin] {
			seen[origin] = true
			sources = append(sources, origin)
		}
	}
	return sources
}
