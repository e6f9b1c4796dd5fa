// Package main provides the cvpubs CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/cvpubs/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// jsonOutput switches from human-readable to JSON output
	jsonOutput bool
	// rootDir overrides project root discovery
	rootDir string
	// verbose reports skipped bibliography entries on stderr
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cvpubs",
	Short: "Inject a BibTeX bibliography into a CV data file",
	Long: `cvpubs converts a BibTeX bibliography into publication records and
merges them into the publications section of a CV YAML data file.

It is meant to run once per build, before the CV is rendered. Paths are
resolved against the project root, which is the --root flag, the
CVPUBS_ROOT environment variable (a .env file is honored), or the nearest
directory above the working directory holding .cvpubs.yml or _data/cv.yml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if present (silently ignore if missing)
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Use JSON output instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root (default: $CVPUBS_ROOT or discovered from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Report skipped bibliography entries on stderr")
	rootCmd.Version = Version
}

// getProjectRoot returns the project root, or an exit code if it cannot be
// determined. An explicit root (flag or environment) is used as given.
func getProjectRoot() (string, int) {
	if rootDir != "" {
		return rootDir, 0
	}
	if root := os.Getenv(config.RootEnv); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	root, err := config.FindProject(cwd)
	if err != nil {
		return "", outputError(ExitError, "finding project root: %v", err)
	}
	return root, 0
}

// mustFindProject returns the project root, exits on error.
func mustFindProject() string {
	root, exitCode := getProjectRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return root
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
