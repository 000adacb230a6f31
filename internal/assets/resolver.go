package assets

import "errors"

// AssetResolver chains loaders: the custom directory when configured, then
// the bundled assets. Only not-found errors move on to the next loader.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver creates a resolver. An empty customBasePath uses the
// bundled assets alone; an invalid one is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	var chain []AssetLoader
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		chain = append(chain, custom)
	}
	chain = append(chain, NewEmbeddedLoader())
	return &AssetResolver{chain: chain}, nil
}

func (r *AssetResolver) LoadTemplate(name, engine string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name, engine) })
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadScript(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadScript(name) })
}

// HasCustomLoader reports whether a custom directory is in the chain.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		content, err = load(l)
		if err == nil || !isNotFound(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrScriptNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
