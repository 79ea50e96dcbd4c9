package domain

import "strings"

// OtherYear is the bucket label for projects without a usable year.
const OtherYear = "Other"

// Project is a single portfolio entry. It is supplied as static content and
// never changes for the lifetime of the process.
type Project struct {
	Title       string   `json:"title" yaml:"title"`
	Slug        string   `json:"slug" yaml:"-"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	GithubURL   string   `json:"github_url,omitempty" yaml:"githubUrl"`
	LiveURL     string   `json:"live_url,omitempty" yaml:"liveUrl"`
	ImageURL    string   `json:"image_url,omitempty" yaml:"imageUrl"`
	Featured    bool     `json:"featured" yaml:"featured"`
	Year        string   `json:"year,omitempty" yaml:"year"`
}

// HasTag reports whether tag is one of the project's tags.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// YearLabel returns the timeline label the project is grouped under.
func (p Project) YearLabel() string {
	if _, ok := parseYear(p.Year); ok {
		return strings.TrimSpace(p.Year)
	}
	return OtherYear
}

func (p Project) clone() Project {
	c := p
	c.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	return c
}

// YearGroup is one timeline bucket.
type YearGroup struct {
	Year     string    `json:"year"`
	Projects []Project `json:"projects"`
}

// View is the derived, render-ready result of filtering the catalog.
type View struct {
	State    FilterState `json:"state"`
	Tags     []string    `json:"tags"`
	Projects []Project   `json:"projects"`
	Groups   []YearGroup `json:"groups"`
	Total    int         `json:"total"`
	Empty    bool        `json:"empty"`
}
