package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/matsen/cvpubs/internal/publication"
	"github.com/matsen/cvpubs/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchField string
	searchLimit int
)

func init() {
	searchCmd.Flags().StringVar(&searchField, "field", "", "Restrict the search to one field: title, author or journal")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over the bibliography's publications",
	Long: `Search titles, authors and venues of the publications parsed from the
bibliography. The index is built in memory for each invocation.

Examples:
  cvpubs search phylogenetics
  cvpubs search --field author Rozhkov
  cvpubs search --field journal "Nature Methods" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	root := mustFindProject()
	cfg := mustLoadConfig(root)
	query := strings.Join(args, " ")

	pubs, skips, err := loadPublications(root, cfg)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	reportSkips(skips)

	db, err := storage.OpenDB(storage.MemoryPath)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer db.Close()

	total, err := db.Rebuild(pubs)
	if err != nil {
		exitWithError(ExitError, "building index: %v", err)
	}

	var results []publication.Publication
	if searchField != "" {
		results, err = db.SearchField(searchField, query, searchLimit)
	} else {
		results, err = db.Search(query, searchLimit)
	}
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		outputJSON(results)
		return nil
	}

	if len(results) == 0 {
		fmt.Printf("No publications match %q\n", query)
		return nil
	}
	fmt.Printf("%d of %d publications match %q:\n\n", len(results), total, query)
	printPublicationsHuman(os.Stdout, results)
	return nil
}
