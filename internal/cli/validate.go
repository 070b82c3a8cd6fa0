package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juglab/portfolio/internal/manifest"
	"github.com/juglab/portfolio/internal/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate registry files",
	Long: `Check YAML registry files against the registry schema and the supported
format version, and build every entry they declare.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			if err := validateFile(path); err != nil {
				failed++
				var docErr *manifest.InvalidDocumentError
				if errors.As(err, &docErr) {
					fmt.Fprintf(out, "%s: invalid\n", path)
					for _, issue := range docErr.Issues {
						fmt.Fprintf(out, "  %s\n", issue)
					}
					continue
				}
				fmt.Fprintf(out, "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(out, "%s: ok\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d registry files failed validation", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateFile loads path into a scratch table, which parses, validates and
// builds every entry.
func validateFile(path string) error {
	return registry.LoadFile(registry.New(), path)
}
