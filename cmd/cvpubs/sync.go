package main

import (
	"os"

	"github.com/spf13/cobra"
)

var syncDryRun bool

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show the publications without writing the CV file")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"inject"},
	Short:   "Inject the bibliography into the CV data file",
	Long: `Parse the bibliography, normalize and sort its entries, and replace the
publications section of the CV data file with them.

Entries without a title or a year are skipped (see --verbose). The CV
file must already contain the top-level key (default "cv"); it is only
rewritten after everything else has succeeded.

Examples:
  cvpubs sync
  cvpubs sync --dry-run
  cvpubs sync --root ~/site --json`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	root := mustFindProject()
	cfg := mustLoadConfig(root)

	resp, skips, err := syncPublications(root, cfg, syncDryRun)
	reportSkips(skips)
	if err != nil {
		os.Exit(outputError(exitCodeFor(err), "%v", err))
	}

	if jsonOutput {
		outputJSONCompact(resp)
		return nil
	}

	if syncDryRun {
		outputHuman("Would inject %d publications into %s\n\n", resp.Count, resp.Path)
		printPublicationsHuman(os.Stdout, resp.Publications)
		return nil
	}
	outputHuman("Injected %d publications into %s\n", resp.Count, resp.Path)
	return nil
}
