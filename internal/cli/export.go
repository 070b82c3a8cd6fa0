package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog",
	Long: `Export the catalog as JSON ({collection: {entry: {URL, Citation}}}) or as a
registry of "<file> <md5> <url>" lines. Without --output the result is
written to stdout; an existing output file is replaced.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json, registry)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "registry" {
		return fmt.Errorf("unknown export format %q (want json or registry)", exportFormat)
	}

	p, err := loadPortfolio()
	if err != nil {
		return err
	}

	if exportOutput != "" {
		if exportFormat == "registry" {
			err = p.ExportRegistry(exportOutput)
		} else {
			err = p.ExportJSON(exportOutput)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", exportOutput)
		return nil
	}

	if exportFormat == "registry" {
		_, err = cmd.OutOrStdout().Write(p.Registry())
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
