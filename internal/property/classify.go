package property

import "regexp"

var (
	declarationPattern = regexp.MustCompile(`^\s*\b(private|public|protected)\b\s\$[a-zA-Z_][a-zA-Z_0-9]*`)
	variablePattern    = regexp.MustCompile(`\$[a-zA-Z_][a-zA-Z_0-9]*`)
)

// visibilityKeywords are never reported as an inline type.
var visibilityKeywords = map[string]bool{
	"private":   true,
	"public":    true,
	"protected": true,
}

// IsPropertyDeclaration reports whether line starts with a visibility keyword
// followed by a single space and a $-prefixed identifier.
func IsPropertyDeclaration(line string) bool {
	return declarationPattern.MatchString(line)
}
