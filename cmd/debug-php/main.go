package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mvp-joe/propgen/internal/parsers"
	"github.com/mvp-joe/propgen/internal/property"
)

func main() {
	path := "testdata/php/simple.php"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	decls, err := parsers.NewPHPParser().FindProperties(context.Background(), source)
	if err != nil {
		log.Fatal(err)
	}

	doc := property.NewTextDocument(string(source))

	fmt.Println("=== DECLARATIONS ===")
	fmt.Printf("Count: %d\n", len(decls))
	for _, d := range decls {
		fmt.Printf("  %s::%s %s %q (line %d, col %d)\n", d.Class, d.Name, d.Visibility, d.Type, d.Line, d.Column)
	}

	fmt.Println("\n=== PROPERTIES ===")
	for _, d := range decls {
		line := doc.LineAt(d.Line)
		prop, err := property.FromPosition(doc, property.Position{Line: d.Line, Character: d.Column})
		if err != nil {
			fmt.Printf("  line %d: %v\n", d.Line, err)
			continue
		}
		fmt.Printf("  %-20s type=%-12s hint=%-10s simple=%-5t %s / %s\n",
			prop.Name(), prop.Type().OrElse("-"), prop.TypeHint().OrElse("-"),
			property.IsPropertyDeclaration(line.Text), prop.GetterName(), prop.SetterName())
		if d, ok := prop.Description().Get(); ok {
			fmt.Printf("  %-20s %s\n", "", d)
		}
	}
}
