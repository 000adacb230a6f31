package styleguide

import (
	"errors"
	"strings"

	"github.com/kylamedina/styleguide.js/internal/assets"
)

// DefaultAsset is the name of the bundled template, stylesheet and script.
const DefaultAsset = assets.DefaultName

// AssetLoader defines the contract for loading document templates and their
// stylesheet and script. Implementations may load from the filesystem,
// embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to the bundled assets. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadTemplate loads a document template by name for a template engine.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name, engine string) (string, error)

	// LoadStyle loads a template stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadScript loads a template script by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only bundled assets.
// If basePath is set, custom assets take precedence with fallback to bundled.
//
// The basePath directory may contain:
//   - templates/{name}.amber or templates/{name}.html
//   - styles/{name}.css
//   - scripts/{name}.js
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter maps internal asset errors to public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTemplate(name, engine string) (string, error) {
	content, err := a.resolver.LoadTemplate(name, engine)
	return content, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	return content, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadScript(name string) (string, error) {
	content, err := a.resolver.LoadScript(name)
	return content, convertAssetError(err)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrScriptNotFound):
		return wrapError(ErrScriptNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateNotFound, err)
	default:
		return wrapError(ErrReadAsset, err)
	}
}

// wrapError keeps the original message and matches the public sentinel.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

// Error leads with the public sentinel text unless the original already does.
func (e *wrappedAssetError) Error() string {
	msg := e.original.Error()
	if prefix := e.sentinel.Error(); !strings.HasPrefix(msg, prefix) {
		return prefix + ": " + msg
	}
	return msg
}

// Unwrap returns the public sentinel; internal errors stay unexported.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
