package pipeline

import "strings"

// SpanKind distinguishes addition from deletion markup.
type SpanKind int

const (
	Addition SpanKind = iota
	Deletion
)

func (k SpanKind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Deletion:
		return "deletion"
	default:
		return "unknown"
	}
}

// Span is one \DIFadd{...} or \DIFdel{...} argument.
type Span struct {
	Kind    SpanKind
	Content string
}

// Counts summarizes the markup spans of a document body.
type Counts struct {
	Additions int
	Deletions int
}

// Body returns the text after the marker line, or the whole text when the
// marker is absent.
func Body(text, marker string) string {
	point, err := FindInsertionPoint(text, marker)
	if err != nil {
		return text
	}
	rest := text[point.Offset:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		return rest[nl+1:]
	}
	return ""
}

// CountMarkup counts the canonical markup spans after \begin{document}.
func CountMarkup(text string) Counts {
	return countSpans(Spans(Body(text, DefaultMarker)))
}

// Spans extracts every canonical markup span from text in document order.
// Arguments are brace-balanced; an escaped brace does not open or close a group.
// An unterminated argument runs to the end of text.
func Spans(text string) []Span {
	var spans []Span

	addOpen := AdditionCommand + "{"
	delOpen := DeletionCommand + "{"

	i := 0
	for i < len(text) {
		idx := strings.Index(text[i:], `\DIF`)
		if idx == -1 {
			break
		}
		pos := i + idx

		var kind SpanKind
		var open string
		switch {
		case strings.HasPrefix(text[pos:], addOpen):
			kind, open = Addition, addOpen
		case strings.HasPrefix(text[pos:], delOpen):
			kind, open = Deletion, delOpen
		default:
			i = pos + len(`\DIF`)
			continue
		}

		contentStart := pos + len(open)
		contentEnd, next := matchBrace(text, contentStart)
		spans = append(spans, Span{Kind: kind, Content: text[contentStart:contentEnd]})
		i = next
	}

	return spans
}

// matchBrace scans from just after an opening brace and returns the index of
// the matching close brace and the index following it.
func matchBrace(text string, start int) (int, int) {
	depth := 1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, i + 1
			}
		}
	}
	return len(text), len(text)
}

func countSpans(spans []Span) Counts {
	var c Counts
	for _, s := range spans {
		switch s.Kind {
		case Addition:
			c.Additions++
		case Deletion:
			c.Deletions++
		}
	}
	return c
}
