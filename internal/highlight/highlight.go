// ABOUTME: Pure search-term highlighting over text segment sequences
// ABOUTME: Highlight and Unhighlight are exact inverses over the text content

package highlight

import "strings"

// Segment is one run of text. Marked runs are the matches a renderer wraps
// in its highlight styling; the sequence's concatenated text is always the
// original content, untouched.
type Segment struct {
	Text   string
	Marked bool
}

// Plain wraps raw text as a single unmarked segment sequence.
func Plain(text string) []Segment {
	if text == "" {
		return nil
	}
	return []Segment{{Text: text}}
}

// Text reassembles the original content of a segment sequence.
func Text(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Unhighlight collapses a sequence back to a single unmarked segment. It is
// the inverse of Highlight: Unhighlight(Highlight(s, q)) preserves the text
// exactly for any query.
func Unhighlight(segments []Segment) []Segment {
	return Plain(Text(segments))
}

// Highlight returns a new sequence with every case-insensitive occurrence
// of query marked. The input is normalized first, so applying Highlight
// repeatedly, with the same query or a new one, never compounds: the result
// depends only on the text and the latest query. An empty query returns the
// unmarked sequence.
func Highlight(segments []Segment, query string) []Segment {
	text := Text(segments)
	if text == "" {
		return nil
	}
	if query == "" {
		return Plain(text)
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		// Case folding shifted byte offsets; match case-sensitively rather
		// than mark the wrong runs.
		lowerText, lowerQuery = text, query
	}

	var out []Segment
	pos := 0
	for pos < len(text) {
		i := strings.Index(lowerText[pos:], lowerQuery)
		if i < 0 {
			out = append(out, Segment{Text: text[pos:]})
			break
		}
		start := pos + i
		end := start + len(lowerQuery)
		if start > pos {
			out = append(out, Segment{Text: text[pos:start]})
		}
		out = append(out, Segment{Text: text[start:end], Marked: true})
		pos = end
	}
	return out
}

// Matches counts the marked segments in a sequence.
func Matches(segments []Segment) int {
	n := 0
	for _, s := range segments {
		if s.Marked {
			n++
		}
	}
	return n
}
