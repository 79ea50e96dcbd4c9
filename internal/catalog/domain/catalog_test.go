package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog(sampleProjects())
	require.NoError(t, err)

	assert.Equal(t, 6, c.Len())
	assert.NotEmpty(t, c.Version())

	p, err := c.BySlug("starblack-media-academy")
	require.NoError(t, err)
	assert.Equal(t, "Starblack Media Academy", p.Title)

	_, err = c.BySlug("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewCatalog_SlugCollisionsGetSuffixes(t *testing.T) {
	c, err := NewCatalog([]Project{
		{Title: "C++ Engine"},
		{Title: "C# Engine"},
		{Title: "C Engine"},
	})
	require.NoError(t, err)

	var slugs []string
	for _, p := range c.Projects() {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"c-engine", "c-engine-2", "c-engine-3"}, slugs)

	p, err := c.BySlug("c-engine-2")
	require.NoError(t, err)
	assert.Equal(t, "C# Engine", p.Title)
}

func TestNewCatalog_TitlesWithoutASCIIStillGetSlugs(t *testing.T) {
	c, err := NewCatalog([]Project{{Title: "個人サイト"}, {Title: "🚀"}, {Title: "!!!"}})
	require.NoError(t, err)

	again, err := NewCatalog([]Project{{Title: "個人サイト"}, {Title: "🚀"}, {Title: "!!!"}})
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, p := range c.Projects() {
		assert.True(t, strings.HasPrefix(p.Slug, "p-"), "slug %q", p.Slug)
		assert.Equal(t, again.Projects()[i].Slug, p.Slug, "slugs are stable")
		assert.False(t, seen[p.Slug])
		seen[p.Slug] = true

		got, err := c.BySlug(p.Slug)
		require.NoError(t, err)
		assert.Equal(t, p.Title, got.Title)
	}
}

func TestNewCatalog_TrimsTags(t *testing.T) {
	c, err := NewCatalog([]Project{
		{Title: "A", Tags: []string{" Go ", "Web", "  "}, Featured: true},
		{Title: "B", Tags: []string{"Go"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Web"}, c.Projects()[0].Tags)
	assert.Equal(t, []string{"Go", "Web"}, c.Tags())

	v := c.View(FilterState{ActiveTag: "Go", ShowAll: true})
	assert.Len(t, v.Projects, 2)
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		projects []Project
	}{
		{"empty title", []Project{{Title: "  "}}},
		{"duplicate title", []Project{{Title: "A"}, {Title: "A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.projects)
			assert.True(t, errors.Is(err, ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestCatalog_IsNotMutatedThroughAccessors(t *testing.T) {
	src := sampleProjects()
	c, err := NewCatalog(src)
	require.NoError(t, err)

	src[0].Tags[0] = "changed-source"
	out := c.Projects()
	out[0].Tags[0] = "changed-copy"
	out[1].Title = "changed-title"

	again := c.Projects()
	assert.Equal(t, "Next.js", again[0].Tags[0])
	assert.Equal(t, "Gbeduloaded", again[1].Title)

	v := c.View(FilterState{ShowAll: true})
	v.Projects[0].Tags[0] = "changed-view"
	assert.Equal(t, "Next.js", c.Projects()[0].Tags[0])
}

func TestCatalog_VersionTracksContent(t *testing.T) {
	a, err := NewCatalog(sampleProjects())
	require.NoError(t, err)
	b, err := NewCatalog(sampleProjects())
	require.NoError(t, err)
	assert.Equal(t, a.Version(), b.Version())

	changed := sampleProjects()
	changed[3].Featured = true
	d, err := NewCatalog(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a.Version(), d.Version())
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Starblack Media Academy": "starblack-media-academy",
		"  Weather   Dashboard ":  "weather-dashboard",
		"Café Déjà Vu":            "cafe-deja-vu",
		"Next.js + Go":            "next-js-go",
		"2023: Year in Review!":   "2023-year-in-review",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}
