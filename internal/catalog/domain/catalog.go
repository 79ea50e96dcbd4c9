package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Catalog is the validated, immutable project collection. Accessors hand
// out copies so callers cannot change what other requests see.
type Catalog struct {
	projects []Project
	bySlug   map[string]int
	version  string
}

// NewCatalog validates projects and takes a deep copy of them. Titles must
// be non-empty and unique. Tags are trimmed and blank tags dropped. Slugs
// are assigned in catalog order; a slug already taken gets a "-2", "-3"...
// suffix.
func NewCatalog(projects []Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, 0, len(projects)),
		bySlug:   make(map[string]int, len(projects)),
	}
	titles := make(map[string]struct{}, len(projects))
	h := xxhash.New()

	for i, p := range projects {
		p = p.clone()
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			return nil, fmt.Errorf("%w: project %d has an empty title", ErrInvalidCatalog, i)
		}
		if _, dup := titles[p.Title]; dup {
			return nil, fmt.Errorf("%w: duplicate title %q", ErrInvalidCatalog, p.Title)
		}
		titles[p.Title] = struct{}{}
		p.Tags = trimTags(p.Tags)

		p.Slug = c.uniqueSlug(projectSlug(p.Title))
		c.bySlug[p.Slug] = i
		c.projects = append(c.projects, p)

		writeProjectHash(h, p)
	}
	c.version = strconv.FormatUint(h.Sum64(), 36)
	return c, nil
}

// Projects returns a copy of every project in catalog order.
func (c *Catalog) Projects() []Project {
	out := make([]Project, len(c.projects))
	for i, p := range c.projects {
		out[i] = p.clone()
	}
	return out
}

// Len is the number of projects.
func (c *Catalog) Len() int { return len(c.projects) }

// Version identifies the catalog content; it changes whenever any field of
// any project changes.
func (c *Catalog) Version() string { return c.version }

// BySlug looks up one project.
func (c *Catalog) BySlug(slug string) (Project, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Project{}, ErrNotFound
	}
	return c.projects[i].clone(), nil
}

// Tags is AvailableTags over the whole catalog.
func (c *Catalog) Tags() []string { return AvailableTags(c.projects) }

// View runs the pipeline against the catalog.
func (c *Catalog) View(state FilterState) View {
	return BuildView(c.Projects(), state)
}

var slugFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a title into a lowercase, hyphen separated ASCII slug.
func Slugify(title string) string {
	folded, _, err := transform.String(slugFold, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}

func (c *Catalog) uniqueSlug(base string) string {
	slug := base
	for n := 2; ; n++ {
		if _, taken := c.bySlug[slug]; !taken {
			return slug
		}
		slug = base + "-" + strconv.Itoa(n)
	}
}

// projectSlug is Slugify with a hash fallback for titles that have no
// ASCII letters or digits.
func projectSlug(title string) string {
	if slug := Slugify(title); slug != "" {
		return slug
	}
	sum := strconv.FormatUint(xxhash.Sum64String(title), 36)
	if len(sum) > 8 {
		sum = sum[:8]
	}
	return "p-" + sum
}

func trimTags(tags []string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func writeProjectHash(h *xxhash.Digest, p Project) {
	fields := []string{p.Title, p.Description, p.GithubURL, p.LiveURL, p.ImageURL, p.Year, strconv.FormatBool(p.Featured)}
	fields = append(fields, p.Tags...)
	for _, f := range fields {
		_, _ = h.WriteString(f)
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{1})
}
