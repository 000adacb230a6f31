package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kylamedina/styleguide.js/internal/yamlutil"
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "styleguide"

// appDir is the directory under the user config dir holding named configs.
const appDir = "styleguide"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxTitleLength = 200
	MaxKeyLength   = 64 // metadata key names
	MaxDateLength  = 64 // "auto:FORMAT" or literal text
	MaxPathLength  = 4096
	MaxSortKeys    = 16
	MaxWorkers     = 64
)

// Engine names accepted in config files.
var (
	templateEngines = []string{"amber", "html"}
	exampleEngines  = []string{"amber", "markdown", "html"}
)

// Config holds the settings of one style-guide build.
type Config struct {
	Sources   []string        `yaml:"sources"` // stylesheet paths or glob patterns
	Output    OutputConfig    `yaml:"output"`
	Render    RenderConfig    `yaml:"render"`
	Template  TemplateConfig  `yaml:"template"`
	Extra     ExtraConfig     `yaml:"extra"`
	Fragments FragmentsConfig `yaml:"fragments"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// OutputConfig defines where the document is written.
type OutputConfig struct {
	File string `yaml:"file"` // empty = print to stdout
}

// RenderConfig defines how records are rendered and ordered.
type RenderConfig struct {
	Title          string   `yaml:"title"`
	GroupBy        string   `yaml:"groupBy"`
	SortBy         []string `yaml:"sortBy"` // absent = default keys, [] = extraction order
	Engine         string   `yaml:"engine"`
	ExampleEngine  string   `yaml:"exampleEngine"`
	IncludeKey     string   `yaml:"includeKey"`
	HighlightStyle string   `yaml:"highlightStyle"`
	Date           string   `yaml:"date"` // "auto", "auto:FORMAT" or literal text
	Workers        int      `yaml:"workers"`
}

// TemplateConfig selects the document template and its assets.
// Each value is an asset name or a file path.
type TemplateConfig struct {
	File string `yaml:"file"`
	CSS  string `yaml:"css"`
	JS   string `yaml:"js"`
}

// ExtraConfig lists additional files merged into the document.
type ExtraConfig struct {
	CSS []string `yaml:"css"` // extracted like sources
	JS  []string `yaml:"js"`
}

// FragmentsConfig defines named HTML fragments for include markers.
type FragmentsConfig struct {
	Dir    string            `yaml:"dir"`    // *.html files, named by file name
	Inline map[string]string `yaml:"inline"` // name -> HTML, wins over Dir
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = bundled assets only
}

// Validate checks lengths and enumerations.
// Called by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	for i, src := range c.Sources {
		if err := validateFieldLength(fmt.Sprintf("sources[%d]", i), src, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("output.file", c.Output.File, MaxPathLength); err != nil {
		return err
	}

	r := c.Render
	if err := validateFieldLength("render.title", r.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.groupBy", r.GroupBy, MaxKeyLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.includeKey", r.IncludeKey, MaxKeyLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.highlightStyle", r.HighlightStyle, MaxKeyLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.date", r.Date, MaxDateLength); err != nil {
		return err
	}
	if len(r.SortBy) > MaxSortKeys {
		return fmt.Errorf("%w: render.sortBy has %d keys (max %d)", ErrInvalidValue, len(r.SortBy), MaxSortKeys)
	}
	for i, key := range r.SortBy {
		if key == "" {
			return fmt.Errorf("%w: render.sortBy[%d] is empty", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("render.sortBy[%d]", i), key, MaxKeyLength); err != nil {
			return err
		}
	}
	if err := validateEnum("render.engine", r.Engine, templateEngines); err != nil {
		return err
	}
	if err := validateEnum("render.exampleEngine", r.ExampleEngine, exampleEngines); err != nil {
		return err
	}
	if r.Workers < 0 || r.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, r.Workers)
	}

	paths := []struct{ field, value string }{
		{"template.file", c.Template.File},
		{"template.css", c.Template.CSS},
		{"template.js", c.Template.JS},
		{"fragments.dir", c.Fragments.Dir},
		{"assets.basePath", c.Assets.BasePath},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.field, p.value, MaxPathLength); err != nil {
			return err
		}
	}
	for i, p := range c.Extra.CSS {
		if err := validateFieldLength(fmt.Sprintf("extra.css[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}
	for i, p := range c.Extra.JS {
		if err := validateFieldLength(fmt.Sprintf("extra.js[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}
	for name := range c.Fragments.Inline {
		if name == "" {
			return fmt.Errorf("%w: fragments.inline has an empty name", ErrInvalidValue)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed.
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns an empty configuration; the library fills defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or an extension, it's treated as a
// file path. Otherwise it's a name searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDefault returns the path of the default config if one exists in the
// current directory or the user config directory, and "" otherwise.
func FindDefault() string {
	path, err := resolveConfigPath(DefaultName)
	if err != nil {
		return ""
	}
	return path
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || filepath.Ext(s) != ""
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/styleguide/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, appDir))
	}

	tried := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			path := filepath.Join(dir, name+ext)
			if fileExists(path) {
				return path, nil
			}
			tried = append(tried, path)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
