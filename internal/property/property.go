// Package property recognizes PHP class property declarations and derives
// accessor metadata from the declaration line and its doc block.
package property

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// pseudoTypes are declared types that cannot be used as a parameter type hint.
var pseudoTypes = map[string]bool{
	"mixed":        true,
	"number":       true,
	"callback":     true,
	"array|object": true,
	"void":         true,
	"null":         true,
	"integer":      true,
}

// Property is the metadata extracted for one property declaration.
// It is filled in during extraction and read-only afterwards.
type Property struct {
	name        string
	typ         Optional
	typeHint    Optional
	description Optional
	indentation string
}

func newProperty(name, indentation string) *Property {
	return &Property{name: name, indentation: indentation}
}

// Name returns the identifier without the "$" sigil.
func (p *Property) Name() string { return p.name }

// Type returns the declared type as written.
func (p *Property) Type() Optional { return p.typ }

// TypeHint returns the type usable in a generated signature.
func (p *Property) TypeHint() Optional { return p.typeHint }

// Description returns the doc block description.
func (p *Property) Description() Optional { return p.description }

// Indentation returns the leading whitespace of the declaration line.
func (p *Property) Indentation() string { return p.indentation }

// complete reports whether nothing is left to learn from the doc block.
func (p *Property) complete() bool {
	return p.name != "" && p.typ.IsPresent() && p.description.IsPresent()
}

// setType records a declared type and recomputes the type hint.
// Both the inline hint and a doc block @var go through here; the @var is
// applied last, so it wins whenever the doc block declares one.
func (p *Property) setType(raw string) {
	p.typ = Some(raw)
	p.typeHint = typeHintFor(raw)
}

func typeHintFor(raw string) Optional {
	hint := raw
	if strings.Index(raw, "[]") > 0 {
		hint = "array"
	}
	if strings.Contains(hint, "|") || pseudoTypes[hint] {
		return None()
	}
	return Some(hint)
}

// GetterName returns "get" (or "is" for bool) followed by the PascalCase name.
func (p *Property) GetterName() string {
	prefix := "get"
	if t, ok := p.typ.Get(); ok && t == "bool" {
		prefix = "is"
	}
	return prefix + pascalCase(p.name)
}

// SetterName returns "set" followed by the PascalCase name.
func (p *Property) SetterName() string {
	return "set" + pascalCase(p.name)
}

// GetterDescription returns a one-line summary for the getter.
func (p *Property) GetterDescription() string {
	return p.describe("Get")
}

// SetterDescription returns a one-line summary for the setter.
func (p *Property) SetterDescription() string {
	return p.describe("Set")
}

func (p *Property) describe(verb string) string {
	if d, ok := p.description.Get(); ok && d != "" {
		return verb + " " + lowerFirst(d)
	}
	return verb + " the value of " + p.name
}

// Accessors is a flattened view of a Property for serialization.
type Accessors struct {
	Name              string   `json:"name"`
	Type              Optional `json:"type"`
	TypeHint          Optional `json:"type_hint"`
	Description       Optional `json:"description"`
	Indentation       string   `json:"indentation"`
	GetterName        string   `json:"getter_name"`
	SetterName        string   `json:"setter_name"`
	GetterDescription string   `json:"getter_description"`
	SetterDescription string   `json:"setter_description"`
}

// Accessors returns the record fields together with the derived names.
func (p *Property) Accessors() Accessors {
	return Accessors{
		Name:              p.name,
		Type:              p.typ,
		TypeHint:          p.typeHint,
		Description:       p.description,
		Indentation:       p.indentation,
		GetterName:        p.GetterName(),
		SetterName:        p.SetterName(),
		GetterDescription: p.GetterDescription(),
		SetterDescription: p.SetterDescription(),
	}
}

// pascalCase upper-cases the first character of each "_"-separated segment.
func pascalCase(name string) string {
	var b strings.Builder
	for _, segment := range strings.Split(name, "_") {
		if segment == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(segment)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(segment[size:])
	}
	return b.String()
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
