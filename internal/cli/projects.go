package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sundayts/portfolio/internal/catalog/domain"
)

type projectsOptions struct {
	tag    string
	all    bool
	byYear bool
}

// NewProjectsCommand creates the projects command.
func NewProjectsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &projectsOptions{}

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Show the projects a visitor would see",
		Long: `Show the projects a visitor would see for a filter selection.

By default only featured projects are listed. --tag narrows to one tag,
--all includes non-featured projects and --by-year prints the timeline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjects(rootOpts, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.tag, "tag", "", "only projects with this tag")
	cmd.Flags().BoolVar(&opts.all, "all", false, "include non-featured projects")
	cmd.Flags().BoolVar(&opts.byYear, "by-year", false, "group projects by year")

	return cmd
}

func runProjects(rootOpts *RootOptions, opts *projectsOptions, out io.Writer) error {
	f := &OutputFormatter{Format: rootOpts.Format, Writer: out}

	_, catalog, err := loadCatalog(rootOpts)
	if err != nil {
		return f.Failure(err)
	}

	view := catalog.View(domain.FilterState{ActiveTag: opts.tag, ShowAll: opts.all})
	if !opts.byYear {
		view.Groups = nil
	}

	return f.Success(view, func(w io.Writer) {
		if view.Empty {
			fmt.Fprintln(w, "no projects match")
			return
		}
		if opts.byYear {
			for _, g := range view.Groups {
				fmt.Fprintln(w, g.Year)
				for _, p := range g.Projects {
					writeProject(w, "  ", p)
				}
			}
		} else {
			for _, p := range view.Projects {
				writeProject(w, "", p)
			}
		}
		fmt.Fprintf(w, "%d of %d projects\n", len(view.Projects), view.Total)
	})
}

func writeProject(w io.Writer, indent string, p domain.Project) {
	marker := " "
	if p.Featured {
		marker = "*"
	}
	fmt.Fprintf(w, "%s%s %s [%s]\n", indent, marker, p.Title, strings.Join(p.Tags, ", "))
}
