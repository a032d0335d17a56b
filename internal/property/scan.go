package property

import "github.com/mvp-joe/propgen/internal/phpdoc"

type scanState int

const (
	scanning scanState = iota
	done
)

// docScanner folds doc block lines, nearest to the declaration first, into a Property.
type docScanner struct {
	state scanState
	prop  *Property
}

// feed consumes one lexed line and returns the resulting state.
func (s *docScanner) feed(line phpdoc.Line) scanState {
	if s.state == done {
		return done
	}

	switch line.Kind {
	case phpdoc.Open, phpdoc.Outside:
		s.state = done

	case phpdoc.Annotation:
		if line.Tag != phpdoc.VarTag || len(line.Tokens) == 0 {
			break
		}
		s.prop.setType(line.Tokens[0])
		if rest := line.Tokens[1:]; len(rest) > 0 {
			s.prop.description = Some(phpdoc.Line{Tokens: rest}.Joined())
		}

	case phpdoc.Text:
		// A text line further from the declaration replaces one found nearer.
		// A blank " *" line records an empty description.
		s.prop.description = Some(line.Joined())
	}

	if s.prop.complete() {
		s.state = done
	}
	return s.state
}

// scanDocBlock reads the doc block that ends on the line above decl.
// The walk starts two lines above the declaration and never visits line 0.
func scanDocBlock(doc Document, decl int, p *Property) {
	if decl < 1 {
		return
	}
	closer := doc.LineAt(decl - 1).Text
	if !phpdoc.IsClose(closer) {
		return
	}

	s := &docScanner{prop: p}

	// "/** @var int Age */" holds the whole block on one line.
	if phpdoc.Lex(closer).Kind == phpdoc.Open {
		s.feed(phpdoc.LexInline(closer))
		return
	}

	for i := decl - 2; i > 0; i-- {
		if s.feed(phpdoc.Lex(doc.LineAt(i).Text)) == done {
			return
		}
	}
}
