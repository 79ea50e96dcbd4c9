package site

import (
	"net/url"

	"github.com/sundayts/portfolio/internal/catalog/domain"
	"github.com/sundayts/portfolio/internal/content"
)

// Theme modes accepted by /theme.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

func validTheme(mode string) bool {
	return mode == ThemeLight || mode == ThemeDark || mode == ThemeSystem
}

// nextTheme cycles light -> dark -> system -> light.
func nextTheme(mode string) string {
	switch mode {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

type navItem struct {
	Name   string
	Href   string
	Active bool
}

type flash struct {
	Kind    string
	Message string
}

// page is the data every template receives.
type page struct {
	Title           string
	Path            string
	Canonical       string
	Theme           string
	NextTheme       string
	ThemeToggleHref string
	CurrentYear     int
	Profile         content.Profile
	Nav             []navItem
	Flash           *flash
	Projects        *projectsSection
}

type tagLink struct {
	Tag    string
	Href   string
	Active bool
}

// projectsSection is the rendered filter UI. Every control is a link that
// carries the state the click leads to.
type projectsSection struct {
	View        domain.View
	AllHref     string
	AllActive   bool
	TagLinks    []tagLink
	ToggleHref  string
	ToggleLabel string
	ResetHref   string
}

// navItems marks the entry whose href equals path.
func navItems(links []content.Link, path string) []navItem {
	out := make([]navItem, 0, len(links))
	for _, l := range links {
		out = append(out, navItem{Name: l.Name, Href: l.Href, Active: l.Href == path})
	}
	return out
}

// stateHref encodes state as a link to base, anchored at the projects
// section. The default state has no query.
func stateHref(base string, s domain.FilterState) string {
	q := url.Values{}
	if s.ActiveTag != "" {
		q.Set("tag", s.ActiveTag)
	}
	if s.ShowAll {
		q.Set("all", "true")
	}
	if len(q) == 0 {
		return base + "#projects"
	}
	return base + "?" + q.Encode() + "#projects"
}

func newProjectsSection(base string, view domain.View) *projectsSection {
	state := view.State

	links := make([]tagLink, 0, len(view.Tags))
	for _, tag := range view.Tags {
		links = append(links, tagLink{
			Tag:    tag,
			Href:   stateHref(base, state.SelectTag(tag)),
			Active: tag == state.ActiveTag,
		})
	}

	label := "View All Projects"
	if state.ShowAll {
		label = "Show Featured Projects"
	}

	return &projectsSection{
		View:        view,
		AllHref:     stateHref(base, state.ClearTag()),
		AllActive:   state.ActiveTag == "",
		TagLinks:    links,
		ToggleHref:  stateHref(base, state.ToggleShowAll()),
		ToggleLabel: label,
		ResetHref:   stateHref(base, domain.FilterState{}),
	}
}

var flashMessages = map[string]flash{
	"subscribed": {Kind: "success", Message: "Thanks for subscribing!"},
	"duplicate":  {Kind: "success", Message: "You are already subscribed."},
	"invalid":    {Kind: "error", Message: "Please enter a valid email address."},
	"slow":       {Kind: "error", Message: "Too many attempts, please try again in a minute."},
	"error":      {Kind: "error", Message: "Something went wrong, please try again later."},
}

func flashFor(code string) *flash {
	if f, ok := flashMessages[code]; ok {
		return &f
	}
	return nil
}
