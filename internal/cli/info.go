package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <collection> <entry>",
	Short: "Show every field of one dataset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio()
		if err != nil {
			return err
		}
		e, err := p.Lookup(args[0], args[1])
		if err != nil {
			return err
		}

		if infoJSON {
			data, err := json.MarshalIndent(e.Spec(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), e.String())
		return err
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output the full entry as JSON")
	rootCmd.AddCommand(infoCmd)
}
