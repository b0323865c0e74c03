package assets

import "strings"

// DefaultPresentationName is the name of the built-in colored presentation.
const DefaultPresentationName = "default"

// Placeholders substituted by Render.
const (
	AdditionColorPlaceholder = "@ADDITION_COLOR@"
	DeletionColorPlaceholder = "@DELETION_COLOR@"
)

// Colors holds the xcolor expressions used for additions and deletions.
type Colors struct {
	Addition string
	Deletion string
}

// DefaultColors returns blue additions and red deletions.
func DefaultColors() Colors {
	return Colors{Addition: "blue", Deletion: "red"}
}

// Validate checks both colors with ValidateColor.
func (c Colors) Validate() error {
	if err := ValidateColor(c.Addition); err != nil {
		return err
	}
	return ValidateColor(c.Deletion)
}

// Render substitutes the color placeholders in a presentation.
func Render(presentation string, colors Colors) (string, error) {
	if err := colors.Validate(); err != nil {
		return "", err
	}
	r := strings.NewReplacer(
		AdditionColorPlaceholder, colors.Addition,
		DeletionColorPlaceholder, colors.Deletion,
	)
	return r.Replace(presentation), nil
}

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadPresentation loads a built-in presentation by name.
func LoadPresentation(name string) (string, error) {
	return defaultLoader.LoadPresentation(name)
}
