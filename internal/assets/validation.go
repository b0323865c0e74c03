package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots, or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateColor accepts xcolor names and mixes such as "blue" or "red!70!black".
// Every !-separated part must be non-empty and alphanumeric, and the first
// part must be a color name.
func ValidateColor(color string) error {
	if color == "" {
		return fmt.Errorf("%w: empty color", ErrInvalidColor)
	}
	for i, part := range strings.Split(color, "!") {
		if part == "" || !isAlnum(part) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, color)
		}
		if i == 0 && !isLetter(part[0]) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, color)
		}
	}
	return nil
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) && (s[i] < '0' || s[i] > '9') {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
