package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[,;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	deckParser = participle.MustBuild[Deck](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		participle.UseLookahead(2),
	)
)

// Deck is the root AST node for a .bingo deck file.
type Deck struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Title StringLiteral  `parser:"Newline* 'deck' @String"`
	Block *Block         `parser:"@@ Newline*"`
}

// Block is a delimited list of statements. 语句之间可以用换行、';' 或 ',' 分隔，也可以直接并排。
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | ',' | Newline )* )* '}'"`
}

// Statement inside a block (assignment/nested section/item literal).
type Statement struct {
	Assignment *Assignment `parser:"  @@"`
	Section    *Section    `parser:"| @@"`
	Item       *ItemLit    `parser:"| @@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Section is a named nested block such as style, generate or items.
type Section struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Block *Block         `parser:"Newline* @@"`
}

// ItemLit is a bare word ("cat") or a question/answer pair ("2+2?" : "4").
type ItemLit struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Text   StringLiteral  `parser:"@String"`
	Answer *StringLiteral `parser:"( ':' @String )?"`
}

// Value represents property values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Raw 返回值的原始文本（字符串已去掉引号）。
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a deck file from an io.Reader. filename 只用于错误信息中的位置。
func Parse(filename string, r io.Reader) (*Deck, error) {
	return deckParser.Parse(filename, r)
}

// ParseString parses deck content from a string.
func ParseString(input string) (*Deck, error) {
	return deckParser.ParseString("", input)
}
