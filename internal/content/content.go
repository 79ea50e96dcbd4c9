// Package content loads the static site document: the owner's profile and
// the project catalog.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sundayts/portfolio/internal/catalog/domain"
)

//go:embed site.yaml
var defaultDocument []byte

// Link is a named href used for navigation and social icons.
type Link struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href" json:"href"`
}

// Profile is everything the hero, about, contact and footer sections show.
type Profile struct {
	Name         string   `yaml:"name" json:"name"`
	Role         string   `yaml:"role" json:"role"`
	Availability string   `yaml:"availability" json:"availability,omitempty"`
	Tagline      string   `yaml:"tagline" json:"tagline,omitempty"`
	Summary      string   `yaml:"summary" json:"summary,omitempty"`
	About        string   `yaml:"about" json:"about,omitempty"`
	Highlights   []string `yaml:"highlights" json:"highlights,omitempty"`
	Experience   string   `yaml:"experience" json:"experience,omitempty"`
	AvatarURL    string   `yaml:"avatarUrl" json:"avatar_url,omitempty"`
	ResumeURL    string   `yaml:"resumeUrl" json:"resume_url,omitempty"`
	Email        string   `yaml:"email" json:"email,omitempty"`
	Phone        string   `yaml:"phone" json:"phone,omitempty"`
	Nav          []Link   `yaml:"nav" json:"nav"`
	Socials      []Link   `yaml:"socials" json:"socials"`
}

// Document is the parsed content file.
type Document struct {
	Profile  Profile          `yaml:"profile"`
	Projects []domain.Project `yaml:"projects"`
}

// Default returns the document compiled into the binary.
func Default() (*Document, error) {
	return Parse(defaultDocument)
}

// Load reads a document from path, or the built-in one when path is empty.
func Load(path string) (*Document, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML document. Unknown keys are rejected so typos in the
// content file fail at startup instead of silently dropping a field.
func Parse(raw []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse content: empty document")
		}
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if doc.Profile.Name == "" {
		return nil, fmt.Errorf("parse content: profile.name is required")
	}
	for i := range doc.Projects {
		if doc.Projects[i].Tags == nil {
			doc.Projects[i].Tags = []string{}
		}
	}
	return &doc, nil
}

// Catalog validates the document's projects.
func (d *Document) Catalog() (*domain.Catalog, error) {
	return domain.NewCatalog(d.Projects)
}
