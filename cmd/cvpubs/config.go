package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/matsen/cvpubs/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration: the project root, the resolved
bibliography and CV paths, and the settings read from .cvpubs.yml
(defaults apply to anything the file leaves out).

Keys (.cvpubs.yml):
  bib_path     Bibliography file (default _bibliography/papers.bib)
  cv_path      CV data file (default _data/cv.yml)
  top_key      Top-level key required in the CV file (default cv)
  section      Section replaced with the publications (default Publications)
  owner_names  Surname variants emphasized in author lists`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindProject()
	cfg := mustLoadConfig(root)

	resp := ConfigResponse{
		Root:       root,
		BibPath:    cfg.BibFile(root),
		CVPath:     cfg.CVFile(root),
		TopKey:     cfg.TopKey,
		Section:    cfg.Section,
		OwnerNames: cfg.OwnerNames,
	}
	if _, err := os.Stat(config.ConfigPath(root)); err == nil {
		resp.ConfigFile = config.ConfigPath(root)
	}

	if jsonOutput {
		outputJSON(resp)
		return nil
	}

	configFile := resp.ConfigFile
	if configFile == "" {
		configFile = "(none, using defaults)"
	}
	fmt.Printf("root:        %s\n", resp.Root)
	fmt.Printf("config:      %s\n", configFile)
	fmt.Printf("bib_path:    %s\n", resp.BibPath)
	fmt.Printf("cv_path:     %s\n", resp.CVPath)
	fmt.Printf("top_key:     %s\n", resp.TopKey)
	fmt.Printf("section:     %s\n", resp.Section)
	fmt.Printf("owner_names: %s\n", strings.Join(resp.OwnerNames, ", "))
	return nil
}
