package property

import (
	"strings"
	"unicode"
)

// Position is a zero-based line and character offset.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span on a single line.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Selection is an editor selection. Extraction uses its start.
type Selection struct {
	Anchor Position `json:"anchor"`
	Active Position `json:"active"`
}

// Start returns the earlier of the two selection ends.
func (s Selection) Start() Position {
	if s.Active.Line < s.Anchor.Line ||
		(s.Active.Line == s.Anchor.Line && s.Active.Character < s.Anchor.Character) {
		return s.Active
	}
	return s.Anchor
}

// Line is a single line of a document.
type Line struct {
	Number int
	Text   string
	// FirstNonWhitespace is the offset of the first non-whitespace character,
	// or len(Text) for blank lines.
	FirstNonWhitespace int
}

// Document is the read-only view of source text that extraction needs.
type Document interface {
	// LineCount returns the number of lines.
	LineCount() int
	// LineAt returns the line with the given zero-based index.
	// Callers keep n within [0, LineCount()).
	LineAt(n int) Line
	// WordRangeAt returns the word covering pos, if any.
	WordRangeAt(pos Position) (Range, bool)
}

// wordSeparators mirrors the default editor word definition; "$" and "_" are word characters.
const wordSeparators = "`~!@#%^&*()-=+[{]}\\|;:'\",.<>/?"

// TextDocument is an in-memory Document over a source string.
type TextDocument struct {
	lines []string
}

// NewTextDocument splits source into lines. "\r\n" endings are normalized.
func NewTextDocument(source string) *TextDocument {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return &TextDocument{lines: strings.Split(source, "\n")}
}

// LineCount implements Document.
func (d *TextDocument) LineCount() int {
	return len(d.lines)
}

// LineAt implements Document.
func (d *TextDocument) LineAt(n int) Line {
	text := d.lines[n]
	first := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) })
	if first < 0 {
		first = len(text)
	}
	return Line{Number: n, Text: text, FirstNonWhitespace: first}
}

// WordRangeAt implements Document. A position touching the end of a word
// still resolves to that word.
func (d *TextDocument) WordRangeAt(pos Position) (Range, bool) {
	if pos.Line < 0 || pos.Line >= len(d.lines) {
		return Range{}, false
	}
	text := d.lines[pos.Line]
	if pos.Character < 0 || pos.Character > len(text) {
		return Range{}, false
	}

	start := pos.Character
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	end := pos.Character
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	if start == end {
		return Range{}, false
	}

	return Range{
		Start: Position{Line: pos.Line, Character: start},
		End:   Position{Line: pos.Line, Character: end},
	}, true
}

// TextIn returns the text covered by r.
func TextIn(doc Document, r Range) string {
	text := doc.LineAt(r.Start.Line).Text
	if r.Start.Character < 0 || r.End.Character > len(text) || r.Start.Character > r.End.Character {
		return ""
	}
	return text[r.Start.Character:r.End.Character]
}

func isWordByte(b byte) bool {
	if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
		return false
	}
	return !strings.ContainsRune(wordSeparators, rune(b))
}
