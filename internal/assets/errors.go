package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrInvalidAssetName = errors.New("invalid asset name") // separators, dots or NUL
	ErrInvalidBasePath  = errors.New("invalid asset path")
	ErrAssetRead        = errors.New("failed to read asset")
)
