package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the publications parsed from the bibliography",
	Long: `List the publications parsed from the bibliography, newest first,
exactly as they would be injected into the CV file.

Examples:
  cvpubs list
  cvpubs list --limit 10
  cvpubs list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindProject()
	cfg := mustLoadConfig(root)

	pubs, skips, err := loadPublications(root, cfg)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	reportSkips(skips)

	total := len(pubs)
	if listLimit > 0 && listLimit < total {
		pubs = pubs[:listLimit]
	}

	if jsonOutput {
		outputJSON(pubs)
		return nil
	}

	if total == 0 {
		fmt.Println("No publications in bibliography")
		return nil
	}
	if len(pubs) < total {
		fmt.Printf("%d publications (showing first %d):\n\n", total, len(pubs))
	} else {
		fmt.Printf("%d publications in bibliography:\n\n", total)
	}
	printPublicationsHuman(os.Stdout, pubs)
	return nil
}
