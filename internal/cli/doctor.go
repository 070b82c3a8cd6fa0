package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/juglab/portfolio/internal/catalog"
	"github.com/juglab/portfolio/internal/config"
	"github.com/juglab/portfolio/internal/dataset"
	"github.com/juglab/portfolio/internal/fetch"
)

var (
	doctorDir      string
	doctorAll      bool
	doctorNoVerify bool
	doctorFix      bool
)

func init() {
	doctorCmd.Flags().StringVar(&doctorDir, "dir", "", "Data directory to check (default: data_dir from config)")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "Also report datasets that were never downloaded")
	doctorCmd.Flags().BoolVar(&doctorNoVerify, "no-verify", false, "Skip MD5 checks")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Delete corrupt archives and partial downloads")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [collection]",
	Short: "Check downloaded datasets",
	Long: `Check the archives in a data directory against their MD5 checksums and
report partial downloads. With --fix, corrupt archives and partial downloads
are deleted so the next fetch downloads them again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio()
		if err != nil {
			return err
		}
		collections := p.Collections()
		if len(args) == 1 {
			c, err := p.Collection(args[0])
			if err != nil {
				return err
			}
			collections = []*catalog.Collection{c}
		}

		dir := doctorDir
		if dir == "" {
			dir = config.Current().DataDir
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Data directory %s:\n", dir)
		failed := 0
		for _, c := range collections {
			for e := range c.All() {
				ok, err := checkEntry(w, e, dir)
				if err != nil {
					return err
				}
				if !ok {
					failed++
				}
			}
		}
		if failed > 0 && !doctorFix {
			return fmt.Errorf("%d datasets need attention (run with --fix to delete broken archives)", failed)
		}
		return nil
	},
}

// checkEntry prints the state of one dataset and reports whether it is
// healthy.
func checkEntry(w io.Writer, e *dataset.Entry, dir string) (bool, error) {
	st, err := fetch.Inspect(e, dir, !doctorNoVerify)
	if err != nil {
		return false, err
	}

	corrupt := false
	switch {
	case !st.Present && !st.Partial:
		if doctorAll {
			fmt.Fprintf(w, "  [MISS] %s: %s not downloaded\n", e.Name(), e.FileName())
		}
		return true, nil
	case st.Partial:
		fmt.Fprintf(w, "  [WARN] %s: interrupted download left %s.part\n", e.Name(), e.FileName())
	}

	if st.Present {
		switch {
		case st.Checked && !st.Verified:
			fmt.Fprintf(w, "  [FAIL] %s: checksum mismatch (expected %s, got %s)\n", e.Name(), e.MD5(), st.Actual)
			corrupt = true
		case !st.Extracted:
			fmt.Fprintf(w, "  [WARN] %s: %s present but not extracted\n", e.Name(), e.FileName())
		default:
			fmt.Fprintf(w, "  [ OK ] %s: %s\n", e.Name(), st.ExtractDir)
		}
	}

	healthy := !corrupt && !st.Partial
	if healthy || !doctorFix {
		return healthy, nil
	}

	// An archive that passed or skipped its checksum is kept.
	removed := st.ArchivePath
	remove := fetch.RemoveArchive
	if !corrupt {
		removed += ".part"
		remove = fetch.RemovePartial
	}
	if err := remove(e, dir); err != nil {
		fmt.Fprintf(w, "  [FAIL] Could not remove %s: %v\n", removed, err)
		return false, nil
	}
	fmt.Fprintf(w, "  [FIX ] Removed %s\n", removed)
	return false, nil
}
