package main

import (
	"fmt"
	"os"

	"github.com/matsen/cvpubs/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .cvpubs.yml",
	Long: `Write a .cvpubs.yml with the default settings to the project root, so
they can be edited. Fails if the file already exists.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := mustFindProject()
	path := config.ConfigPath(root)

	if _, err := os.Stat(path); err == nil {
		exitWithError(ExitError, "%s already exists", path)
	}

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		outputJSON(StatusResponse{Status: "initialized", Path: path})
	} else {
		fmt.Printf("Wrote default configuration to %s\n", path)
	}
	return nil
}
