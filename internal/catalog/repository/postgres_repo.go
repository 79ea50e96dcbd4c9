package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/sundayts/portfolio/internal/catalog/domain"
)

// PostgresSource reads the project list from the portfolio_projects table.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a new postgres-backed catalog source
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Projects returns every visible project ordered by position.
func (s *PostgresSource) Projects(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT title, description, tags,
       coalesce(github_url, ''), coalesce(live_url, ''), coalesce(image_url, ''),
       featured, coalesce(year, '')
FROM portfolio_projects
WHERE hidden = false
ORDER BY position, title;
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var (
			p    domain.Project
			tags pq.StringArray
		)
		if err := rows.Scan(&p.Title, &p.Description, &tags,
			&p.GithubURL, &p.LiveURL, &p.ImageURL,
			&p.Featured, &p.Year); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Tags = []string(tags)
		if p.Tags == nil {
			p.Tags = []string{}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

// Catalog loads and validates the table contents.
func (s *PostgresSource) Catalog(ctx context.Context) (*domain.Catalog, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewCatalog(projects)
}
