package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juglab/portfolio/internal/fetch"
)

var hashCmd = &cobra.Command{
	Use:   "hash <file>...",
	Short: "Print the MD5 checksum of files",
	Long:  `Print MD5 checksums in md5sum format, for writing registry entries.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			sum, err := fetch.MD5File(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
