package phpdoc

import "strings"

// Kind classifies a single source line seen from inside a doc block.
type Kind int

const (
	// Outside is a line with no "*" at all; the doc block cannot continue through it.
	Outside Kind = iota
	// Open is a line holding the "/**" opener.
	Open
	// Annotation is a line carrying an @tag.
	Annotation
	// Text is a free-text line (possibly empty).
	Text
)

func (k Kind) String() string {
	switch k {
	case Outside:
		return "outside"
	case Open:
		return "open"
	case Annotation:
		return "annotation"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// VarTag is the annotation that declares a property's type.
const VarTag = "@var"

// Line is the lexed form of one doc block line.
type Line struct {
	Kind Kind
	// Tag is set for Annotation lines, e.g. "@var" or "@deprecated".
	Tag string
	// Tokens holds the words after the tag for Annotation lines, and all
	// words for Text lines.
	Tokens []string
}

// Joined returns the tokens separated by single spaces.
func (l Line) Joined() string {
	return strings.Join(l.Tokens, " ")
}

// Lex classifies a raw line that sits above a declaration.
//
// A line containing "@var" anywhere is an Annotation with Tag "@var" and the
// words following it as Tokens. Other lines whose first word starts with "@"
// are annotations with that word as Tag.
func Lex(raw string) Line {
	if strings.Contains(raw, "/**") {
		return Line{Kind: Open}
	}
	if !strings.Contains(raw, "*") {
		return Line{Kind: Outside}
	}

	tokens := Words(raw)

	for i, tok := range tokens {
		if tok == VarTag {
			return Line{Kind: Annotation, Tag: VarTag, Tokens: tokens[i+1:]}
		}
	}

	if len(tokens) > 0 && strings.HasPrefix(tokens[0], "@") {
		return Line{Kind: Annotation, Tag: tokens[0], Tokens: tokens[1:]}
	}

	return Line{Kind: Text, Tokens: tokens}
}

// LexInline lexes a single-line block such as "/** @var int Age */".
// The opener and closer are removed and the body is lexed like an interior line.
func LexInline(raw string) Line {
	body := raw
	if i := strings.Index(body, "/**"); i >= 0 {
		body = body[i+3:]
	}
	if i := strings.LastIndex(body, "*/"); i >= 0 {
		body = body[:i]
	}
	// Keep a marker so the body is never mistaken for an Outside line.
	return Lex("*" + body)
}

// IsClose reports whether the line ends a doc block.
func IsClose(raw string) bool {
	return strings.HasSuffix(strings.TrimRight(raw, " \t\r"), "*/")
}

// Words strips indentation and leading "*" markers and splits the rest on whitespace.
func Words(raw string) []string {
	body := strings.TrimLeft(raw, " \t")
	body = strings.TrimLeft(body, "*")
	return strings.Fields(body)
}
