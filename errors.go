package styleguide

import (
	"errors"

	"github.com/kylamedina/styleguide.js/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrReadSource  = errors.New("failed to read source")
	ErrReadAsset   = errors.New("failed to read asset")
	ErrWriteOutput = errors.New("failed to write output")
	ErrInvalidDate = errors.New("invalid date")
	ErrInternal    = errors.New("internal error")

	// Pipeline errors, re-exported for errors.Is checks.
	ErrUnknownEngine     = pipeline.ErrUnknownEngine
	ErrUnknownExample    = pipeline.ErrUnknownExampleEngine
	ErrUnknownTemplate   = pipeline.ErrUnknownTemplateEngine
	ErrExampleCompile    = pipeline.ErrExampleCompile
	ErrTemplateRender    = pipeline.ErrTemplateRender
	ErrUnterminatedBlock = pipeline.ErrUnterminatedBlock
	ErrUnresolvedInclude = pipeline.ErrUnresolvedInclude

	// Asset loading errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
