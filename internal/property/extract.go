package property

import (
	"fmt"
	"strings"
)

// FromPosition extracts the property whose identifier is at or near pos.
func FromPosition(doc Document, pos Position) (*Property, error) {
	if pos.Line < 0 || pos.Line >= doc.LineCount() {
		return nil, fmt.Errorf("%w: line %d is outside the document", ErrNoPropertyFound, pos.Line)
	}

	line := doc.LineAt(pos.Line)
	token, ok := resolveToken(doc, line, pos)
	if !ok {
		return nil, fmt.Errorf("%w: no $-prefixed identifier on line %d", ErrNoPropertyFound, pos.Line)
	}

	p := newProperty(strings.TrimPrefix(token, "$"), line.Text[:line.FirstNonWhitespace])

	if inline, ok := inlineType(line.Text, token); ok {
		p.setType(inline)
	}

	scanDocBlock(doc, line.Number, p)

	return p, nil
}

// FromSelection extracts the property at the start of sel.
func FromSelection(doc Document, sel Selection) (*Property, error) {
	return FromPosition(doc, sel.Start())
}

// FromLine extracts the property declared on the given line.
func FromLine(doc Document, line int) (*Property, error) {
	if line < 0 || line >= doc.LineCount() {
		return nil, fmt.Errorf("%w: line %d is outside the document", ErrNoPropertyFound, line)
	}
	l := doc.LineAt(line)
	return FromPosition(doc, Position{Line: line, Character: l.FirstNonWhitespace})
}

// resolveToken returns the $-prefixed token under pos. A word that is not a
// property variable (a keyword or a type under the cursor) falls back to the
// first $identifier on the line.
func resolveToken(doc Document, line Line, pos Position) (string, bool) {
	if r, ok := doc.WordRangeAt(pos); ok {
		word := TextIn(doc, r)
		if m := variablePattern.FindString(word); m != "" && strings.HasPrefix(word, m) {
			return m, true
		}
	}

	m := variablePattern.FindString(line.Text)
	return m, m != ""
}

// inlineType returns the word written directly before token on the declaration line.
func inlineType(text, token string) (string, bool) {
	text = strings.TrimRight(text, " \t\r")
	text = strings.TrimSuffix(text, ";")

	// Tabs separate words as well as spaces, so "\tprivate" is never a type.
	words := strings.Fields(text)
	for i, w := range words {
		if w != token {
			continue
		}
		if i == 0 {
			return "", false
		}
		prev := words[i-1]
		// "private $a, $b;" lists several properties; "$a," is not a type.
		if visibilityKeywords[prev] || strings.HasSuffix(prev, ",") {
			return "", false
		}
		return prev, true
	}
	return "", false
}
