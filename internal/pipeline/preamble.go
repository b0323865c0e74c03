package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMarker is the line that ends a LaTeX preamble.
const DefaultMarker = `\begin{document}`

// Comment lines delimiting the injected presentation block.
const (
	BlockBegin = "%texdiff:presentation:begin"
	BlockEnd   = "%texdiff:presentation:end"
)

// Sentinel errors for presentation injection.
var (
	ErrMarkerNotFound = errors.New("preamble marker not found")
	ErrEmptyMarker    = errors.New("marker cannot be empty")
)

// InsertionPoint locates the marker line inside a document.
type InsertionPoint struct {
	Line   int // 1-based line number of the marker
	Offset int // byte offset of the start of the marker line
}

// FindInsertionPoint returns the first line whose trimmed content equals marker.
// Indentation, trailing whitespace (including \r) and a trailing % comment
// around the marker are tolerated, anything else on the line is not.
func FindInsertionPoint(text, marker string) (InsertionPoint, error) {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return InsertionPoint{}, ErrEmptyMarker
	}

	offset := 0
	line := 1
	for offset <= len(text) {
		end := strings.IndexByte(text[offset:], '\n')
		var current string
		if end == -1 {
			current = text[offset:]
		} else {
			current = text[offset : offset+end]
		}
		if markerLine(current, marker) {
			return InsertionPoint{Line: line, Offset: offset}, nil
		}
		if end == -1 {
			break
		}
		offset += end + 1
		line++
	}

	return InsertionPoint{}, fmt.Errorf("%w: %q", ErrMarkerNotFound, marker)
}

// markerLine reports whether line is the marker once whitespace and, unless
// the marker itself contains one, an unescaped % comment are removed.
func markerLine(line, marker string) bool {
	if !strings.Contains(marker, "%") {
		line = stripComment(line)
	}
	return strings.TrimSpace(line) == marker
}

// stripComment cuts line at the first % not escaped by a backslash.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return line[:i]
		}
	}
	return line
}

// PresentationBlock wraps body in the begin and end sentinel lines.
// The result always ends with a newline.
func PresentationBlock(body string) string {
	return presentationBlock(body, "\n")
}

// presentationBlock is PresentationBlock with every line ending in eol.
func presentationBlock(body, eol string) string {
	body = strings.ReplaceAll(strings.TrimRight(body, "\r\n"), "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(BlockBegin) + len(body) + len(BlockEnd) + 3*len(eol))
	b.WriteString(BlockBegin)
	b.WriteString(eol)
	if body != "" {
		b.WriteString(strings.ReplaceAll(body, "\n", eol))
		b.WriteString(eol)
	}
	b.WriteString(BlockEnd)
	b.WriteString(eol)
	return b.String()
}

// lineEnding returns the terminator of the line starting at offset,
// defaulting to \n for a final unterminated line.
func lineEnding(text string, offset int) string {
	end := strings.IndexByte(text[offset:], '\n')
	if end > 0 && text[offset+end-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// HasPresentation reports whether a presentation block already sits in the
// preamble, before the marker line.
func HasPresentation(text, marker string) bool {
	point, err := FindInsertionPoint(text, marker)
	if err != nil {
		return false
	}
	return hasBlockBefore(text, point)
}

// InjectPresentation inserts the sentinel-wrapped body immediately before the
// marker line. Text that already carries a block in its preamble is returned
// unchanged.
func InjectPresentation(text, marker, body string) (string, error) {
	point, err := FindInsertionPoint(text, marker)
	if err != nil {
		return "", err
	}
	if hasBlockBefore(text, point) {
		return text, nil
	}

	block := presentationBlock(body, lineEnding(text, point.Offset))

	var b strings.Builder
	b.Grow(len(text) + len(block))
	b.WriteString(text[:point.Offset])
	b.WriteString(block)
	b.WriteString(text[point.Offset:])
	return b.String(), nil
}

func hasBlockBefore(text string, point InsertionPoint) bool {
	for _, line := range strings.Split(text[:point.Offset], "\n") {
		if strings.TrimSpace(line) == BlockBegin {
			return true
		}
	}
	return false
}
