package assets

import "errors"

// Resolver combines custom and embedded loaders.
// With a custom loader configured, a presentation is looked up there first
// and the embedded copy is used only when the custom one does not exist.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver.
// An empty customBasePath uses only embedded presentations.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadPresentation loads a presentation, trying the custom loader first.
// Validation and I/O errors from the custom loader are returned as is.
func (r *Resolver) LoadPresentation(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadPresentation(name)
	}

	content, err := r.custom.LoadPresentation(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrPresentationNotFound) {
		return "", err
	}

	return r.embedded.LoadPresentation(name)
}

// HasCustomLoader returns true if a custom loader is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
