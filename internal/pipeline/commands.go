package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRename is returned for a rename that is not a pair of control sequences.
var ErrInvalidRename = errors.New("invalid command rename")

// Canonical markup commands emitted by latexdiff.
const (
	AdditionCommand = `\DIFadd`
	DeletionCommand = `\DIFdel`
)

// Rename maps a variant control sequence to its canonical name.
// Both names include the leading backslash.
type Rename struct {
	From string
	To   string
}

// DefaultRenames folds latexdiff's float-environment variants into the
// canonical addition and deletion commands.
func DefaultRenames() []Rename {
	return []Rename{
		{From: `\DIFaddFL`, To: AdditionCommand},
		{From: `\DIFdelFL`, To: DeletionCommand},
	}
}

// Validate checks that both sides are well-formed control words.
func (r Rename) Validate() error {
	if !isControlWord(r.From) {
		return fmt.Errorf("%w: from %q", ErrInvalidRename, r.From)
	}
	if !isControlWord(r.To) {
		return fmt.Errorf("%w: to %q", ErrInvalidRename, r.To)
	}
	return nil
}

// NormalizeCommands applies each rename in order.
// A match only counts at a control-word boundary: \DIFaddFL{x} is renamed,
// \DIFaddFLx is a different command and is left alone.
func NormalizeCommands(text string, renames []Rename) string {
	for _, r := range renames {
		text = replaceControlWord(text, r.From, r.To)
	}
	return text
}

// replaceControlWord replaces every occurrence of the control word from
// that is not followed by another letter.
func replaceControlWord(text, from, to string) string {
	if from == "" || !strings.Contains(text, from) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	rest := text
	for {
		idx := strings.Index(rest, from)
		if idx == -1 {
			b.WriteString(rest)
			break
		}
		end := idx + len(from)
		b.WriteString(rest[:idx])
		if end < len(rest) && isASCIILetter(rest[end]) {
			b.WriteString(from)
		} else {
			b.WriteString(to)
		}
		rest = rest[end:]
	}

	return b.String()
}

// isControlWord reports whether s is a backslash followed by one or more letters.
func isControlWord(s string) bool {
	if len(s) < 2 || s[0] != '\\' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isASCIILetter(s[i]) {
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
