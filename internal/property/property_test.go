package property

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for property extraction:
// - IsPropertyDeclaration accepts visibility + single space + $identifier only
// - Cursor on $name resolves the identifier, no inline type, indentation kept
// - Inline type before the identifier becomes Type and TypeHint
// - Doc block @var overrides the inline type; free text becomes the description
// - A text line further up replaces one nearer the declaration, blank lines included
// - Tab indentation is never mistaken for an inline type
// - Scan stops at the opener, at non-comment lines, and once all fields are known
// - Type hints collapse "[]" to array and suppress unions and pseudo-types
// - Getter/setter names and descriptions
// - Positions without any $identifier return ErrNoPropertyFound
// - Extraction is idempotent

func doc(lines ...string) *TextDocument {
	return NewTextDocument(strings.Join(lines, "\n"))
}

func TestIsPropertyDeclaration(t *testing.T) {
	t.Parallel()

	accepted := []string{
		"private $name;",
		"    public $name = 'x';",
		"\tprotected $_internal;",
		"protected $a1_b2",
	}
	for _, line := range accepted {
		assert.True(t, IsPropertyDeclaration(line), line)
	}

	rejected := []string{
		"private int $age;",
		"private  $name;",
		"privateer $name;",
		"static $count;",
		"private $1abc;",
		"private name;",
		"// private $name;",
		"",
	}
	for _, line := range rejected {
		assert.False(t, IsPropertyDeclaration(line), line)
	}
}

func TestFromPosition_PlainDeclaration(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class User {",
		"    private $name;",
		"}",
	)

	p, err := FromPosition(d, Position{Line: 2, Character: 13})
	require.NoError(t, err)

	assert.Equal(t, "name", p.Name())
	assert.False(t, p.Type().IsPresent())
	assert.False(t, p.TypeHint().IsPresent())
	assert.False(t, p.Description().IsPresent())
	assert.Equal(t, "    ", p.Indentation())
}

func TestFromPosition_InlineType(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class User {",
		"    private int $age;",
		"}",
	)

	p, err := FromPosition(d, Position{Line: 2, Character: 18})
	require.NoError(t, err)

	assert.Equal(t, "age", p.Name())
	typ, ok := p.Type().Get()
	require.True(t, ok)
	assert.Equal(t, "int", typ)
	assert.Equal(t, "int", p.TypeHint().OrElse(""))
}

func TestFromPosition_TabIndentedDeclaration(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class User {",
		"\tprivate $age;",
		"\tprotected\tint $count;",
		"\tpublic string $label;",
		"}",
	)

	p, err := FromLine(d, 2)
	require.NoError(t, err)
	assert.Equal(t, "age", p.Name())
	assert.Equal(t, "\t", p.Indentation())
	assert.False(t, p.Type().IsPresent())
	assert.False(t, p.TypeHint().IsPresent())
	assert.Equal(t, "getAge", p.GetterName())

	p, err = FromLine(d, 3)
	require.NoError(t, err)
	assert.Equal(t, "count", p.Name())
	assert.Equal(t, "int", p.Type().OrElse(""))

	p, err = FromLine(d, 4)
	require.NoError(t, err)
	assert.Equal(t, "string", p.Type().OrElse(""))
}

func TestFromPosition_CursorOnKeywordFallsBackToLine(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"    protected ?string $email = null;",
	)

	// Cursor on "protected".
	p, err := FromPosition(d, Position{Line: 1, Character: 6})
	require.NoError(t, err)
	assert.Equal(t, "email", p.Name())
	assert.Equal(t, "?string", p.Type().OrElse(""))

	// Cursor in the whitespace before the keyword.
	p, err = FromPosition(d, Position{Line: 1, Character: 1})
	require.NoError(t, err)
	assert.Equal(t, "email", p.Name())
}

func TestFromPosition_DocBlockVar(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class User {",
		"    /**",
		"     * The user's display name.",
		"     * @var string",
		"     */",
		"    private $name;",
		"}",
	)

	p, err := FromPosition(d, Position{Line: 6, Character: 14})
	require.NoError(t, err)

	assert.Equal(t, "name", p.Name())
	assert.Equal(t, "string", p.Type().OrElse(""))
	assert.Equal(t, "string", p.TypeHint().OrElse(""))
	assert.Equal(t, "The user's display name.", p.Description().OrElse(""))
	assert.Equal(t, "Get the user's display name.", p.GetterDescription())
	assert.Equal(t, "Set the user's display name.", p.SetterDescription())
}

func TestFromPosition_DocBlockOverridesInlineType(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class Cart {",
		"    /**",
		"     * @var Item[] Items in the cart",
		"     */",
		"    protected array $items;",
		"}",
	)

	p, err := FromLine(d, 5)
	require.NoError(t, err)

	assert.Equal(t, "items", p.Name())
	assert.Equal(t, "Item[]", p.Type().OrElse(""))
	assert.Equal(t, "array", p.TypeHint().OrElse(""))
	assert.Equal(t, "Items in the cart", p.Description().OrElse(""))
}

func TestFromPosition_InlineTypeStopsScanOnceDescribed(t *testing.T) {
	t.Parallel()

	// The inline type is already known, so the description line completes the
	// record before the @var above it is reached.
	d := doc(
		"<?php",
		"class Counter {",
		"    /**",
		"     * @var string",
		"     * Number of hits.",
		"     */",
		"    private int $hits;",
		"}",
	)

	p, err := FromLine(d, 6)
	require.NoError(t, err)

	assert.Equal(t, "int", p.Type().OrElse(""))
	assert.Equal(t, "Number of hits.", p.Description().OrElse(""))
}

func TestFromPosition_FartherTextWins(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class Post {",
		"    /**",
		"     * Post title.",
		"     *",
		"     * Shown in listings.",
		"     * @deprecated",
		"     */",
		"    public $title;",
		"}",
	)

	p, err := FromLine(d, 8)
	require.NoError(t, err)

	assert.False(t, p.Type().IsPresent())
	// No type, so the scan runs to the opener. @tag lines are skipped and the
	// blank line's empty description is replaced by the farther text.
	assert.Equal(t, "Post title.", p.Description().OrElse(""))
}

func TestFromPosition_FartherBlankLineClearsDescription(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class User {",
		"    /**",
		"     *",
		"     * The name.",
		"     */",
		"    private $name;",
		"}",
	)

	p, err := FromLine(d, 6)
	require.NoError(t, err)

	desc, ok := p.Description().Get()
	require.True(t, ok)
	assert.Equal(t, "", desc)
	assert.Equal(t, "Get the value of name", p.GetterDescription())
	assert.Equal(t, "Set the value of name", p.SetterDescription())
}

func TestFromPosition_BlankLineEndsScanWithInlineType(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class User {",
		"    /**",
		"     * @var string",
		"     * The name.",
		"     *",
		"     */",
		"    private int $name;",
		"}",
	)

	p, err := FromLine(d, 7)
	require.NoError(t, err)

	// Type and description are both known after the blank line.
	assert.Equal(t, "int", p.Type().OrElse(""))
	desc, ok := p.Description().Get()
	require.True(t, ok)
	assert.Equal(t, "", desc)
}

func TestFromPosition_VarDescriptionAfterText(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class Flag {",
		"    /**",
		"     * @var bool Whether the flag is on",
		"     * Extra note.",
		"     */",
		"    private $is_active;",
		"}",
	)

	p, err := FromLine(d, 6)
	require.NoError(t, err)

	assert.Equal(t, "bool", p.Type().OrElse(""))
	assert.Equal(t, "Whether the flag is on", p.Description().OrElse(""))
	assert.Equal(t, "isIsActive", p.GetterName())
	assert.Equal(t, "setIsActive", p.SetterName())
}

func TestFromPosition_NoDocBlockCloser(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class A {",
		"    /**",
		"     * @var string",
		"     */",
		"",
		"    private $gap;",
		"}",
	)

	p, err := FromLine(d, 6)
	require.NoError(t, err)
	assert.False(t, p.Type().IsPresent())
	assert.False(t, p.Description().IsPresent())
}

func TestFromPosition_ScanStopsAtCode(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class A {",
		"    private $first;",
		"     * @var int",
		"     */",
		"    private $second;",
		"}",
	)

	p, err := FromLine(d, 5)
	require.NoError(t, err)
	assert.Equal(t, "int", p.Type().OrElse(""))
	assert.False(t, p.Description().IsPresent())
}

func TestFromPosition_SingleLineDocBlock(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class A {",
		"    /** @var float Price in euros */",
		"    public $price;",
		"}",
	)

	p, err := FromLine(d, 3)
	require.NoError(t, err)
	assert.Equal(t, "float", p.Type().OrElse(""))
	assert.Equal(t, "Price in euros", p.Description().OrElse(""))
}

func TestFromPosition_LineZeroNeverScanned(t *testing.T) {
	t.Parallel()

	d := doc(
		" * Hidden on line zero.",
		" * @var int",
		" */",
		"private $top;",
	)

	p, err := FromLine(d, 3)
	require.NoError(t, err)
	assert.Equal(t, "int", p.Type().OrElse(""))
	assert.False(t, p.Description().IsPresent())
}

func TestFromPosition_NoPropertyFound(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class A {",
		"    public function run() {}",
		"",
		"}",
	)

	_, err := FromPosition(d, Position{Line: 2, Character: 8})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPropertyFound))

	_, err = FromPosition(d, Position{Line: 3, Character: 0})
	assert.ErrorIs(t, err, ErrNoPropertyFound)

	_, err = FromPosition(d, Position{Line: 99, Character: 0})
	assert.ErrorIs(t, err, ErrNoPropertyFound)

	_, err = FromLine(d, -1)
	assert.ErrorIs(t, err, ErrNoPropertyFound)
}

func TestFromSelection(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"    private string $first_name;",
	)

	sel := Selection{
		Anchor: Position{Line: 1, Character: 31},
		Active: Position{Line: 1, Character: 19},
	}
	p, err := FromSelection(d, sel)
	require.NoError(t, err)
	assert.Equal(t, "first_name", p.Name())
	assert.Equal(t, "string", p.Type().OrElse(""))
	assert.Equal(t, "getFirstName", p.GetterName())
}

func TestFromPosition_Idempotent(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"class User {",
		"    /**",
		"     * The user's display name.",
		"     * @var string",
		"     */",
		"    private $name;",
		"}",
	)

	pos := Position{Line: 6, Character: 12}
	first, err := FromPosition(d, pos)
	require.NoError(t, err)
	second, err := FromPosition(d, pos)
	require.NoError(t, err)

	assert.Equal(t, first.Accessors(), second.Accessors())
}

func TestTypeHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    string
		present bool
	}{
		{raw: "int", want: "int", present: true},
		{raw: "string[]", want: "array", present: true},
		{raw: "\\App\\User[]", want: "array", present: true},
		{raw: "[]", want: "[]", present: true},
		{raw: "mixed"},
		{raw: "number"},
		{raw: "callback"},
		{raw: "array|object"},
		{raw: "void"},
		{raw: "null"},
		{raw: "integer"},
		{raw: "int|string"},
		{raw: "string[]|null", want: "array", present: true},
		{raw: "int|string[]", want: "array", present: true},
		{raw: "Closure", want: "Closure", present: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			p := newProperty("x", "")
			p.setType(tt.raw)

			assert.Equal(t, tt.raw, p.Type().OrElse(""))
			got, ok := p.TypeHint().Get()
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAccessorNames(t *testing.T) {
	t.Parallel()

	p := newProperty("is_active", "")
	assert.Equal(t, "getIsActive", p.GetterName())
	assert.Equal(t, "setIsActive", p.SetterName())

	p.setType("bool")
	assert.Equal(t, "isIsActive", p.GetterName())
	assert.Equal(t, "setIsActive", p.SetterName())

	p.setType("boolean")
	assert.Equal(t, "getIsActive", p.GetterName())

	assert.Equal(t, "getUserName", newProperty("userName", "").GetterName())
	assert.Equal(t, "getName", newProperty("_name", "").GetterName())
	assert.Equal(t, "getAB", newProperty("a__b", "").GetterName())
}

func TestAccessorDescriptions(t *testing.T) {
	t.Parallel()

	p := newProperty("email", "")
	assert.Equal(t, "Get the value of email", p.GetterDescription())
	assert.Equal(t, "Set the value of email", p.SetterDescription())

	p.description = Some("Primary Email address")
	assert.Equal(t, "Get primary Email address", p.GetterDescription())
	assert.Equal(t, "Set primary Email address", p.SetterDescription())
}

func TestAccessorsJSON(t *testing.T) {
	t.Parallel()

	p := newProperty("age", "  ")
	p.setType("mixed")

	data, err := json.Marshal(p.Accessors())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "age", decoded["name"])
	assert.Equal(t, "mixed", decoded["type"])
	assert.Nil(t, decoded["type_hint"])
	assert.Nil(t, decoded["description"])
	assert.Equal(t, "getAge", decoded["getter_name"])
	assert.Equal(t, "Get the value of age", decoded["getter_description"])
}

func TestWordRangeAt(t *testing.T) {
	t.Parallel()

	d := doc("    private $user_id;")

	r, ok := d.WordRangeAt(Position{Line: 0, Character: 14})
	require.True(t, ok)
	assert.Equal(t, "$user_id", TextIn(d, r))

	// End of a word still counts.
	r, ok = d.WordRangeAt(Position{Line: 0, Character: 20})
	require.True(t, ok)
	assert.Equal(t, "$user_id", TextIn(d, r))

	_, ok = d.WordRangeAt(Position{Line: 0, Character: 1})
	assert.False(t, ok)

	_, ok = d.WordRangeAt(Position{Line: 3, Character: 0})
	assert.False(t, ok)
}

func TestFromPosition_MultipleElements(t *testing.T) {
	t.Parallel()

	d := doc(
		"<?php",
		"    private $a, $b;",
	)

	p, err := FromPosition(d, Position{Line: 1, Character: 17})
	require.NoError(t, err)
	assert.Equal(t, "b", p.Name())
	assert.False(t, p.Type().IsPresent())
}
