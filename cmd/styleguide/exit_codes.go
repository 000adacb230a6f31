package main

import (
	"errors"
	"os"

	styleguide "github.com/kylamedina/styleguide.js"
	"github.com/kylamedina/styleguide.js/internal/config"
)

// Exit codes for the styleguide CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // Example or template rendering failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, styleguide.ErrExampleCompile) ||
		errors.Is(err, styleguide.ErrTemplateRender) {
		return ExitRender
	}

	// Checked before I/O: a missing named asset wraps os.ErrNotExist.
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, styleguide.ErrUnknownEngine) ||
		errors.Is(err, styleguide.ErrInvalidDate) ||
		errors.Is(err, styleguide.ErrInvalidAssetPath) ||
		errors.Is(err, styleguide.ErrTemplateNotFound) ||
		errors.Is(err, styleguide.ErrStyleNotFound) ||
		errors.Is(err, styleguide.ErrScriptNotFound) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrInitExists) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, styleguide.ErrReadSource) ||
		errors.Is(err, styleguide.ErrReadAsset) ||
		errors.Is(err, styleguide.ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
