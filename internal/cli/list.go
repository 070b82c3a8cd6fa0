package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/juglab/portfolio/internal/catalog"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [collection]",
	Short: "List datasets",
	Long:  `List every dataset in the catalog, or only those of one collection.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the {URL, Citation} projection as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	p, err := loadPortfolio()
	if err != nil {
		return err
	}

	collections := p.Collections()
	if len(args) == 1 {
		c, err := p.Collection(args[0])
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, p.List())
		}
		collections = []*catalog.Collection{c}
	}

	if listJSON {
		var v any = p
		if len(args) == 1 {
			v = collections[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	return printListTable(cmd, collections)
}

func printListTable(cmd *cobra.Command, collections []*catalog.Collection) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tNAME\tFILE\tLICENSE")
	for _, c := range collections {
		for e := range c.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name(), e.Name(), e.FileName(), e.License())
		}
	}
	return w.Flush()
}
