package assets

import "embed"

//go:embed templates styles scripts
var bundled embed.FS

// EmbeddedLoader loads the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (*EmbeddedLoader) LoadTemplate(name, engine string) (string, error) {
	return readAsset(bundled, templateKind, name, engine)
}

func (*EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(bundled, styleKind, name, "css")
}

func (*EmbeddedLoader) LoadScript(name string) (string, error) {
	return readAsset(bundled, scriptKind, name, "js")
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
