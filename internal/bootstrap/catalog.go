package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sundayts/portfolio/config"
	"github.com/sundayts/portfolio/internal/catalog/domain"
	"github.com/sundayts/portfolio/internal/catalog/repository"
	"github.com/sundayts/portfolio/internal/content"
)

// LoadContent reads the content document and builds the catalog. The
// profile always comes from the document; projects come from postgres when
// CATALOG_SOURCE=postgres, in which case db must be open.
func LoadContent(ctx context.Context, cfg config.ContentConfig, db *sql.DB) (*content.Document, *domain.Catalog, error) {
	doc, err := content.Load(cfg.File)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Source {
	case config.SourcePostgres:
		if db == nil {
			return nil, nil, fmt.Errorf("catalog source postgres: no database connection")
		}
		catalog, err := repository.NewPostgresSource(db).Catalog(ctx)
		if err != nil {
			return nil, nil, err
		}
		return doc, catalog, nil
	default:
		catalog, err := doc.Catalog()
		if err != nil {
			return nil, nil, err
		}
		return doc, catalog, nil
	}
}
