package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juglab/portfolio/internal/config"
	"github.com/juglab/portfolio/internal/fetch"
)

var (
	fetchDir       string
	fetchNoVerify  bool
	fetchNoParents bool
	fetchQuiet     bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <collection> <entry>",
	Short: "Download, verify and extract a dataset",
	Long: `Download a dataset archive into the target directory, check its MD5
checksum and extract it into a subdirectory named after the archive.

An archive that is already present is not downloaded again. On a checksum
mismatch the archive is left in place; delete it to download again, or pass
--no-verify to use it as is.`,
	Args: cobra.ExactArgs(2),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDir, "dir", "", "Target directory (default: data_dir from config)")
	fetchCmd.Flags().BoolVar(&fetchNoVerify, "no-verify", false, "Skip MD5 verification")
	fetchCmd.Flags().BoolVar(&fetchNoParents, "no-parents", false, "Fail if the target directory's parent does not exist")
	fetchCmd.Flags().BoolVarP(&fetchQuiet, "quiet", "q", false, "Do not print download progress")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	p, err := loadPortfolio()
	if err != nil {
		return err
	}
	e, err := p.Lookup(args[0], args[1])
	if err != nil {
		return err
	}

	s := config.Current()
	dir := fetchDir
	if dir == "" {
		dir = s.DataDir
	}

	req := fetch.DefaultRequest()
	req.VerifyHash = s.Verify && !fetchNoVerify
	req.CreateParents = !fetchNoParents

	var progress *fetch.ProgressPrinter
	var onProgress fetch.ProgressFunc
	if !fetchQuiet {
		progress = fetch.NewProgressPrinter(cmd.ErrOrStderr(), e.FileName())
		onProgress = progress.Update
	}

	log.Info("fetching dataset", slog.String("entry", e.Name()), slog.String("dir", dir))
	files, err := e.FetchWith(cmd.Context(), newFetcher(onProgress), dir, req)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s ready in %s\n", e.Name(), filepath.Join(dir, e.Stem()))
	for _, group := range files.Groups() {
		fmt.Fprintf(out, "  %s: %s\n", group, strings.Join(files[group], ", "))
	}
	return nil
}
