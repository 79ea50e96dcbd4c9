// Package cli implements portfolioctl, the operator tool for inspecting and
// validating site content offline.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sundayts/portfolio/internal/catalog/domain"
	"github.com/sundayts/portfolio/internal/content"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Content string // content file; empty uses the built-in document
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for portfolioctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Inspect and validate portfolio content",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Content, "content", "", "content YAML file (default: built-in)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewTagsCommand(opts))
	cmd.AddCommand(NewProjectsCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadCatalog reads the content file named by opts.
func loadCatalog(opts *RootOptions) (*content.Document, *domain.Catalog, error) {
	doc, err := content.Load(opts.Content)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load content", err)
	}
	catalog, err := doc.Catalog()
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "invalid catalog", err)
	}
	return doc, catalog, nil
}
