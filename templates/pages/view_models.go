package pages

import (
	"lawyer_tools/models"
	"lawyer_tools/services"
)

// DashboardView holds the data for the home page and the dashboard
type DashboardView struct {
	Lang  string
	User  *models.User
	Tools []services.Tool
}

// ApplicationView holds the tool shown on an application page
type ApplicationView struct {
	Lang string
	Tool services.Tool
}

// DateDeltaView is either the input form or a computed result
type DateDeltaView struct {
	Lang     string
	Start    string
	End      string
	Days     int
	Computed bool
	// Invalid is set when inputs were submitted but could not be parsed
	Invalid bool
}

// SpeedLimitsView is either the query form or a matched rule
type SpeedLimitsView struct {
	Lang        string
	Zones       []string
	Zone        string
	Speed       string
	Rule        *services.SpeedLimitRule
	Invalid     bool
	NoMatch     bool
	Unavailable bool
}

// ContactView holds the contact form state
type ContactView struct {
	Lang    string
	Name    string
	Email   string
	Message string
	// FieldErrors maps a form field to an i18n key
	FieldErrors      map[string]string
	ErrorKey         string
	Success          bool
	CSRFToken        string
	TurnstileSiteKey string
	Nonce            string
	Team             []TeamMember
}

// TeamMember is shown on the contact page
type TeamMember struct {
	Name     string
	Title    string
	Portrait string
}

var team = []TeamMember{
	{Name: "Simon Schnetzler", Title: "Lic. iur.", Portrait: "/public/images/portrait_simon.jpg"},
	{Name: "Gregor Münch", Title: "Lic. iur.", Portrait: "/public/images/portrait_gregor.jpg"},
	{Name: "Christoph Russ", Title: "Dr. sc. ETH", Portrait: "/public/images/portrait_christoph.jpg"},
	{Name: "Christian Wengert", Title: "Dr. sc. ETH", Portrait: "/public/images/portrait_christian.jpg"},
}
