package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kylamedina/styleguide.js/internal/config"
)

// envPrefix starts every variable read by the CLI.
const envPrefix = "STYLEGUIDE_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath     string // STYLEGUIDE_CONFIG: config name or path
	Output         string // STYLEGUIDE_OUTPUT: output file
	Template       string // STYLEGUIDE_TEMPLATE: template name or path
	AssetPath      string // STYLEGUIDE_ASSET_PATH: custom asset directory
	Fragments      string // STYLEGUIDE_FRAGMENTS: fragment directory
	Date           string // STYLEGUIDE_DATE: generation date
	HighlightStyle string // STYLEGUIDE_HIGHLIGHT_STYLE: chroma style
	Workers        int    // STYLEGUIDE_WORKERS: parallel workers
}

// knownEnvVars lists valid STYLEGUIDE_* variables, for typo detection.
var knownEnvVars = map[string]bool{
	"STYLEGUIDE_CONFIG":          true,
	"STYLEGUIDE_OUTPUT":          true,
	"STYLEGUIDE_TEMPLATE":        true,
	"STYLEGUIDE_ASSET_PATH":      true,
	"STYLEGUIDE_FRAGMENTS":       true,
	"STYLEGUIDE_DATE":            true,
	"STYLEGUIDE_HIGHLIGHT_STYLE": true,
	"STYLEGUIDE_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// A malformed or non-positive STYLEGUIDE_WORKERS is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("STYLEGUIDE_CONFIG"),
		Output:         os.Getenv("STYLEGUIDE_OUTPUT"),
		Template:       os.Getenv("STYLEGUIDE_TEMPLATE"),
		AssetPath:      os.Getenv("STYLEGUIDE_ASSET_PATH"),
		Fragments:      os.Getenv("STYLEGUIDE_FRAGMENTS"),
		Date:           os.Getenv("STYLEGUIDE_DATE"),
		HighlightStyle: os.Getenv("STYLEGUIDE_HIGHLIGHT_STYLE"),
	}

	if workers := os.Getenv("STYLEGUIDE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized STYLEGUIDE_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies set environment values into empty config fields.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Output != "" && cfg.Output.File == "" {
		cfg.Output.File = env.Output
	}
	if env.Template != "" && cfg.Template.File == "" {
		cfg.Template.File = env.Template
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Fragments != "" && cfg.Fragments.Dir == "" {
		cfg.Fragments.Dir = env.Fragments
	}
	if env.Date != "" && cfg.Render.Date == "" {
		cfg.Render.Date = env.Date
	}
	if env.HighlightStyle != "" && cfg.Render.HighlightStyle == "" {
		cfg.Render.HighlightStyle = env.HighlightStyle
	}
	if env.Workers > 0 && cfg.Render.Workers == 0 {
		cfg.Render.Workers = env.Workers
	}
}
