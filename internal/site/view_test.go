package site

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sundayts/portfolio/internal/catalog/domain"
	"github.com/sundayts/portfolio/internal/content"
)

func TestStateHref(t *testing.T) {
	assert.Equal(t, "/#projects", stateHref("/", domain.FilterState{}))
	assert.Equal(t, "/projects?tag=Tailwind+CSS#projects", stateHref("/projects", domain.FilterState{ActiveTag: "Tailwind CSS"}))
	assert.Equal(t, "/?all=true&tag=Go#projects", stateHref("/", domain.FilterState{ActiveTag: "Go", ShowAll: true}))
}

func TestNewProjectsSection_LinksCarryNextState(t *testing.T) {
	view := domain.View{
		State: domain.FilterState{ActiveTag: "Go", ShowAll: true},
		Tags:  []string{"Go", "Web"},
	}
	s := newProjectsSection("/", view)

	assert.False(t, s.AllActive)
	assert.Equal(t, "/?all=true#projects", s.AllHref)
	assert.Equal(t, []tagLink{
		{Tag: "Go", Href: "/?all=true#projects", Active: true},
		{Tag: "Web", Href: "/?all=true&tag=Web#projects"},
	}, s.TagLinks)
	assert.Equal(t, "/?tag=Go#projects", s.ToggleHref)
	assert.Equal(t, "Show Featured Projects", s.ToggleLabel)
	assert.Equal(t, "/#projects", s.ResetHref)
}

func TestNavItems(t *testing.T) {
	items := navItems([]content.Link{{Name: "Home", Href: "/"}, {Name: "About", Href: "/about"}}, "/about")
	assert.Equal(t, []navItem{{Name: "Home", Href: "/"}, {Name: "About", Href: "/about", Active: true}}, items)
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, nextTheme(ThemeLight))
	assert.Equal(t, ThemeSystem, nextTheme(ThemeDark))
	assert.Equal(t, ThemeLight, nextTheme(ThemeSystem))
	assert.False(t, validTheme("sepia"))
}
