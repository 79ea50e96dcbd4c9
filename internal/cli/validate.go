package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ValidationResult is the validate command's payload.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Profile  string `json:"profile"`
	Projects int    `json:"projects"`
	Tags     int    `json:"tags"`
	Version  string `json:"version"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a content file loads and its catalog is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			doc, catalog, err := loadCatalog(rootOpts)
			if err != nil {
				return f.Failure(err)
			}

			res := ValidationResult{
				Valid:    true,
				Profile:  doc.Profile.Name,
				Projects: catalog.Len(),
				Tags:     len(catalog.Tags()),
				Version:  catalog.Version(),
			}
			return f.Success(res, func(w io.Writer) {
				fmt.Fprintf(w, "content ok: %s, %d projects, %d tags\n", res.Profile, res.Projects, res.Tags)
			})
		},
	}
}
