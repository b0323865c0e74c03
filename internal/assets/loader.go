package assets

// Loader defines the contract for loading presentation blocks.
type Loader interface {
	// LoadPresentation loads a presentation by name (without .tex extension).
	// Returns ErrPresentationNotFound if the presentation doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPresentation(name string) (string, error)
}
