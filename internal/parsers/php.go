package parsers

import (
	"context"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// Declaration locates one property inside a class, trait or enum body.
type Declaration struct {
	// Name is the variable including its "$" sigil.
	Name string
	// Class is the enclosing class-like declaration, if it has a name.
	Class string
	// Visibility is "public", "protected" or "private"; empty for "var".
	Visibility string
	// Type is the native type declared on the property, if any.
	Type string
	// Line and Column are zero-based and point at the "$" of Name.
	Line   int
	Column int
}

// PHPParser finds property declarations in PHP source.
type PHPParser struct {
	*treeSitterParser
}

// NewPHPParser creates a new PHP parser.
func NewPHPParser() *PHPParser {
	lang := sitter.NewLanguage(php.LanguagePHP())
	return &PHPParser{
		treeSitterParser: newTreeSitterParser(lang, "php"),
	}
}

// ParseFile reads and parses a PHP file.
func (p *PHPParser) ParseFile(ctx context.Context, filePath string) ([]Declaration, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return p.FindProperties(ctx, source)
}

// FindProperties returns every property declaration in source, in source order.
func (p *PHPParser) FindProperties(ctx context.Context, source []byte) ([]Declaration, error) {
	decls := []Declaration{}

	err := p.parse(ctx, source, func(root *sitter.Node) {
		walkTree(root, func(n *sitter.Node) bool {
			switch n.Kind() {
			case "class_declaration", "trait_declaration", "enum_declaration":
				className := extractNodeText(n.ChildByFieldName("name"), source)
				if body := n.ChildByFieldName("body"); body != nil {
					decls = append(decls, p.extractProperties(body, source, className)...)
				}
				return false
			}
			return true
		})
	})
	if err != nil {
		return nil, err
	}

	return decls, nil
}

// extractProperties extracts the property declarations directly inside a body node.
func (p *PHPParser) extractProperties(body *sitter.Node, source []byte, className string) []Declaration {
	var decls []Declaration

	for _, decl := range findChildrenByType(body, "property_declaration") {
		visibility := extractNodeText(findChildByType(decl, "visibility_modifier"), source)
		typeName := extractNodeText(decl.ChildByFieldName("type"), source)

		for _, elem := range findChildrenByType(decl, "property_element") {
			varNode := findChildByType(elem, "variable_name")
			if varNode == nil {
				continue
			}

			name := extractNodeText(varNode, source)
			if !strings.HasPrefix(name, "$") {
				continue
			}

			start := varNode.StartPosition()
			decls = append(decls, Declaration{
				Name:       name,
				Class:      className,
				Visibility: strings.ToLower(visibility),
				Type:       typeName,
				Line:       int(start.Row),
				Column:     int(start.Column),
			})
		}
	}

	return decls
}
