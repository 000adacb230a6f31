package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// DefaultName is the name of every bundled asset.
const DefaultName = "default"

// AssetLoader loads document templates and their stylesheet and script.
type AssetLoader interface {
	// LoadTemplate loads templates/{name}.{engine}.
	LoadTemplate(name, engine string) (string, error)
	// LoadStyle loads styles/{name}.css.
	LoadStyle(name string) (string, error)
	// LoadScript loads scripts/{name}.js.
	LoadScript(name string) (string, error)
}

// kind is one family of assets: its directory and its not-found error.
type kind struct {
	dir      string
	notFound error
}

var (
	templateKind = kind{dir: "templates", notFound: ErrTemplateNotFound}
	styleKind    = kind{dir: "styles", notFound: ErrStyleNotFound}
	scriptKind   = kind{dir: "scripts", notFound: ErrScriptNotFound}
)

// ValidateAssetName rejects names that are empty or could select another
// file: path separators, dots and NUL bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// readAsset reads {k.dir}/{name}.{ext} from fsys.
func readAsset(fsys fs.FS, k kind, name, ext string) (string, error) {
	for _, part := range []string{name, ext} {
		if err := ValidateAssetName(part); err != nil {
			return "", err
		}
	}

	data, err := fs.ReadFile(fsys, path.Join(k.dir, name+"."+ext))
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %s/%s.%s", k.notFound, k.dir, name, ext)
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}
