// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/styleguide.yaml or run 'styleguide init'"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/styleguide/") {
			hint += "; or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the output path is not a directory and its parent is writable")
}

// ForUnknownEngine returns hints listing the engines that exist.
func ForUnknownEngine(flag string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format(flag + " accepts: " + strings.Join(available, ", "))
}

// ForExampleCompile returns hints for example markup that failed to compile.
func ForExampleCompile(engine string) string {
	var hints []string
	if engine == "" || engine == "amber" {
		hints = append(hints, "amber examples must indent with tabs or spaces consistently")
	}
	hints = append(hints, "use --example-engine html for examples written as plain HTML")
	return formatHints(hints)
}

// ForAssetNotFound returns hints for template, style or script lookups.
func ForAssetNotFound(assetPath string) string {
	if assetPath == "" {
		return format("bundled assets are named \"default\"; pass a file path to use your own")
	}
	return format("expected under " + assetPath + "/templates, /styles or /scripts")
}

// ForInvalidAssetPath returns hints for an asset directory that cannot be opened.
func ForInvalidAssetPath() string {
	return format("--asset-path must name an existing directory holding templates/, styles/ or scripts/")
}

// ForNoRecords returns a hint when sources contain no documentation blocks.
func ForNoRecords() string {
	return format("documentation blocks open with \"/***\"; plain \"/*\" comments are ignored")
}

// ForUnresolvedInclude returns a hint for include markers left in place.
func ForUnresolvedInclude() string {
	return format("add the fragment with --fragments DIR or give a block a matching \"name\" key")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
