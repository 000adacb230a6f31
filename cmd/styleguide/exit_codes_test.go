package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config and CLI,
//   plus wrapped errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions and that custom codes
//   stay below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	styleguide "github.com/kylamedina/styleguide.js"
	"github.com/kylamedina/styleguide.js/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Render errors (exit 4)
		{"example compile", styleguide.ErrExampleCompile, ExitRender},
		{"template render", styleguide.ErrTemplateRender, ExitRender},
		{"wrapped example compile", fmt.Errorf("css/buttons.css:3: %w", styleguide.ErrExampleCompile), ExitRender},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read source", styleguide.ErrReadSource, ExitIO},
		{"read asset", styleguide.ErrReadAsset, ExitIO},
		{"write output", styleguide.ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"unknown engine", styleguide.ErrUnknownEngine, ExitUsage},
		{"invalid date", styleguide.ErrInvalidDate, ExitUsage},
		{"invalid asset path", styleguide.ErrInvalidAssetPath, ExitUsage},
		{"template not found", styleguide.ErrTemplateNotFound, ExitUsage},
		{"style not found", styleguide.ErrStyleNotFound, ExitUsage},
		{"script not found", styleguide.ErrScriptNotFound, ExitUsage},
		{"invalid flag", ErrInvalidFlag, ExitUsage},
		{"init exists", ErrInitExists, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},
		{"named asset missing beats not-exist", fmt.Errorf("%w: %w", styleguide.ErrTemplateNotFound, os.ErrNotExist), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"internal", styleguide.ErrInternal, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitRender} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom code %d outside 3..125", code)
		}
	}
}
