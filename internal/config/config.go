// Package config handles project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents project configuration stored in .cvpubs.yml.
type Config struct {
	BibPath    string   `yaml:"bib_path"`    // Bibliography, relative to the project root
	CVPath     string   `yaml:"cv_path"`     // CV data file, relative to the project root
	TopKey     string   `yaml:"top_key"`     // Top-level key that must exist in the CV file
	Section    string   `yaml:"section"`     // Section replaced with the publication list
	OwnerNames []string `yaml:"owner_names"` // Surname variants emphasized in author lists
}

const (
	ConfigFile = ".cvpubs.yml"

	DefaultBibPath = "_bibliography/papers.bib"
	DefaultCVPath  = "_data/cv.yml"
	DefaultTopKey  = "cv"
	DefaultSection = "Publications"

	// RootEnv overrides the project root.
	RootEnv = "CVPUBS_ROOT"
)

// DefaultOwnerNames are the surname variants used when none are configured.
var DefaultOwnerNames = []string{"Rozhkov", "Рожков"}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		BibPath:    DefaultBibPath,
		CVPath:     DefaultCVPath,
		TopKey:     DefaultTopKey,
		Section:    DefaultSection,
		OwnerNames: append([]string(nil), DefaultOwnerNames...),
	}
}

// ConfigPath returns the path to .cvpubs.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// IsProject checks if the given path looks like a CV project root: it has a
// config file or the default CV data file.
func IsProject(root string) bool {
	for _, p := range []string{ConfigPath(root), filepath.Join(root, DefaultCVPath)} {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// FindProject walks up from the given path to find a project root.
// If none is found the absolute start path is returned, so that missing
// files are later reported relative to where the search began.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for dir := abs; ; {
		if IsProject(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}

// Load reads configuration from the project at the given root. Missing
// fields, or a missing file, fall back to the defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.merge(&file)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overwrites c with the non-empty fields of other.
func (c *Config) merge(other *Config) {
	if other.BibPath != "" {
		c.BibPath = other.BibPath
	}
	if other.CVPath != "" {
		c.CVPath = other.CVPath
	}
	if other.TopKey != "" {
		c.TopKey = other.TopKey
	}
	if other.Section != "" {
		c.Section = other.Section
	}
	if other.OwnerNames != nil {
		c.OwnerNames = other.OwnerNames
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BibPath) == "" {
		return fmt.Errorf("bib_path must not be empty")
	}
	if strings.TrimSpace(c.CVPath) == "" {
		return fmt.Errorf("cv_path must not be empty")
	}
	if strings.TrimSpace(c.TopKey) == "" {
		return fmt.Errorf("top_key must not be empty")
	}
	if strings.TrimSpace(c.Section) == "" {
		return fmt.Errorf("section must not be empty")
	}
	return nil
}

// Save writes configuration to the project at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// BibFile returns the absolute bibliography path for a project root.
func (c *Config) BibFile(root string) string {
	return resolve(root, c.BibPath)
}

// CVFile returns the absolute CV data file path for a project root.
func (c *Config) CVFile(root string) string {
	return resolve(root, c.CVPath)
}

// resolve expands ~ and joins relative paths onto root.
func resolve(root, path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
