package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemLoader loads assets from a directory. Every read goes through an
// os.Root opened on the directory, so symlinks pointing outside it fail.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader checks that basePath is an openable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if err := root.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: abs}, nil
}

func (f *FilesystemLoader) LoadTemplate(name, engine string) (string, error) {
	return f.read(templateKind, name, engine)
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.read(styleKind, name, "css")
}

func (f *FilesystemLoader) LoadScript(name string) (string, error) {
	return f.read(scriptKind, name, "js")
}

func (f *FilesystemLoader) read(k kind, name, ext string) (string, error) {
	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()

	return readAsset(root.FS(), k, name, ext)
}

var _ AssetLoader = (*FilesystemLoader)(nil)
