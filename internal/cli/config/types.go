// Package config loads pkglineage configuration from file, environment
// variables, and CLI flags with koanf.
package config

import "fmt"

// Default configuration values.
const (
	DefaultBin    = "sf"
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Config holds all CLI configuration options.
type Config struct {
	// Org is the Dev Hub alias or username passed to the sf CLI.
	Org string `koanf:"org"`
	// Bin is the Salesforce CLI binary.
	Bin string `koanf:"sf_bin"`
	// PackagesFile, when set, is a saved package-list envelope read instead
	// of invoking the CLI. VersionsFile is its version-list counterpart.
	PackagesFile string `koanf:"packages_file"`
	VersionsFile string `koanf:"versions_file"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}

// Offline reports whether both input documents come from files.
func (c *Config) Offline() bool {
	return c.PackagesFile != "" && c.VersionsFile != ""
}

// Validate checks cross-field consistency. The org requirement holds only for
// live runs; offline runs need no Dev Hub at all.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, or json)", c.OutputFormat)
	}

	if (c.PackagesFile == "") != (c.VersionsFile == "") {
		return fmt.Errorf("packages_file and versions_file must be set together")
	}

	if !c.Offline() && c.Org == "" {
		return fmt.Errorf("no org configured: set org in pkglineage.yaml, PKGLINEAGE_ORG, or --org")
	}

	return nil
}
