package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/cvpubs/internal/publication"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for the search command

	ListTitleMaxLen = 70 // Title truncation in list/search output
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputJSONCompact writes a value as compact JSON to stdout.
func outputJSONCompact(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error in the appropriate format and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSONCompact(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	return code
}

// exitWithError outputs an error in the appropriate format and exits.
func exitWithError(code int, format string, args ...interface{}) {
	os.Exit(outputError(code, format, args...))
}

// reportSkips writes one line per skipped entry to stderr in verbose mode.
func reportSkips(skips []publication.Skip) {
	if !verbose {
		return
	}
	for _, s := range skips {
		fmt.Fprintf(os.Stderr, "skip: entry %d (@%s): %s\n", s.Index+1, s.Type, s.Reason)
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SyncResponse is the response for the sync command.
type SyncResponse struct {
	Status       string                    `json:"status"` // injected or dry_run
	Count        int                       `json:"count"`
	Skipped      int                       `json:"skipped"`
	Path         string                    `json:"path"`
	Publications []publication.Publication `json:"publications,omitempty"`
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Root       string   `json:"root"`
	ConfigFile string   `json:"config_file,omitempty"`
	BibPath    string   `json:"bib_path"`
	CVPath     string   `json:"cv_path"`
	TopKey     string   `json:"top_key"`
	Section    string   `json:"section"`
	OwnerNames []string `json:"owner_names"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// printPublicationsHuman prints publications one per block:
//
//	2022-03  Title
//	         Author One, Author Two. Journal. doi:...
func printPublicationsHuman(w io.Writer, pubs []publication.Publication) {
	for _, p := range pubs {
		fmt.Fprintf(w, "%-8s %s\n", p.Date, truncateString(p.Title, ListTitleMaxLen))
		if line := formatByline(p); line != "" {
			fmt.Fprintf(w, "%-8s %s\n", "", line)
		}
	}
}

// formatByline joins authors, venue and DOI into one line.
func formatByline(p publication.Publication) string {
	var parts []string
	if len(p.Authors) > 0 {
		parts = append(parts, strings.Join(p.Authors, ", "))
	}
	if p.Journal != "" {
		parts = append(parts, p.Journal)
	}
	if p.DOI != "" {
		parts = append(parts, "doi:"+p.DOI)
	}
	return strings.Join(parts, ". ")
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
