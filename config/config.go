// Package config holds run settings for tablejoin.
// Values come from defaults, an optional YAML/TOML/JSON file, and flags,
// in increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
	FormatSQLite   = "sqlite"
)

// Missing table policies.
const (
	// MissingTableFail aborts the run when any table is absent.
	MissingTableFail = "fail"
	// MissingTableEmpty treats an absent reference or image table as empty.
	MissingTableEmpty = "empty"
)

// Defaults reproduce the original "Top Tourist Cities" run.
const (
	DefaultOutput           = "final_city_data.csv"
	DefaultBaseURL          = "https://example.com"
	DefaultTourismSelector  = "table.tourism-stats"
	DefaultRefSelector      = "table.city-references"
	DefaultImagesSelector   = "table.city-images"
	defaultFormat           = FormatCSV
	defaultMissingTableMode = MissingTableFail
)

// Formats lists the accepted output formats.
var Formats = []string{FormatCSV, FormatJSON, FormatMarkdown, FormatPDF, FormatSQLite}

// Tables holds the CSS selector of each input table.
type Tables struct {
	Tourism    string `yaml:"tourism" json:"tourism" toml:"tourism"`
	References string `yaml:"references" json:"references" toml:"references"`
	Images     string `yaml:"images" json:"images" toml:"images"`
}

// Config is the complete run configuration.
type Config struct {
	// Source is a URL or file path; empty selects the built-in page.
	Source       string `yaml:"source" json:"source" toml:"source"`
	Output       string `yaml:"output" json:"output" toml:"output"`
	Format       string `yaml:"format" json:"format" toml:"format"`
	BaseURL      string `yaml:"baseURL" json:"baseURL" toml:"baseURL"`
	MissingTable string `yaml:"missingTable" json:"missingTable" toml:"missingTable"`
	Verbose      bool   `yaml:"verbose" json:"verbose" toml:"verbose"`
	Tables       Tables `yaml:"tables" json:"tables" toml:"tables"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:       DefaultOutput,
		Format:       defaultFormat,
		BaseURL:      DefaultBaseURL,
		MissingTable: defaultMissingTableMode,
		Tables: Tables{
			Tourism:    DefaultTourismSelector,
			References: DefaultRefSelector,
			Images:     DefaultImagesSelector,
		},
	}
}

// Load reads a YAML, TOML or JSON config file, chosen by extension.
// Unknown extensions are tried as YAML, then JSON.
func Load(path string) (Config, error) {
	var fc Config
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse toml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// Apply overlays every non-zero field of fc onto c.
func (c *Config) Apply(fc Config) {
	if c == nil {
		return
	}
	if fc.Source != "" {
		c.Source = fc.Source
	}
	if fc.Output != "" {
		c.Output = fc.Output
	}
	if fc.Format != "" {
		c.Format = fc.Format
	}
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.MissingTable != "" {
		c.MissingTable = fc.MissingTable
	}
	if fc.Verbose {
		c.Verbose = true
	}
	if fc.Tables.Tourism != "" {
		c.Tables.Tourism = fc.Tables.Tourism
	}
	if fc.Tables.References != "" {
		c.Tables.References = fc.Tables.References
	}
	if fc.Tables.Images != "" {
		c.Tables.Images = fc.Tables.Images
	}
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("config: output path is required")
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("config: unknown format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.MissingTable != MissingTableFail && c.MissingTable != MissingTableEmpty {
		return fmt.Errorf("config: missingTable must be %q or %q, got %q", MissingTableFail, MissingTableEmpty, c.MissingTable)
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid base URL %q (must include scheme, e.g. https://example.com)", c.BaseURL)
	}
	if c.Tables.Tourism == "" || c.Tables.References == "" || c.Tables.Images == "" {
		return errors.New("config: every table needs a selector")
	}
	return nil
}

// formatExtensions maps formats to the extension used for the default output.
var formatExtensions = map[string]string{
	FormatCSV:      ".csv",
	FormatJSON:     ".json",
	FormatMarkdown: ".md",
	FormatPDF:      ".pdf",
	FormatSQLite:   ".db",
}

// ResolveOutput swaps the extension of the default output path to match
// the chosen format. Explicitly configured paths are left alone.
func (c *Config) ResolveOutput() {
	if c.Output != DefaultOutput {
		return
	}
	if ext, ok := formatExtensions[c.Format]; ok {
		c.Output = strings.TrimSuffix(DefaultOutput, filepath.Ext(DefaultOutput)) + ext
	}
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
