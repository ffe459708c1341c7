package term

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var termLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "QAtom", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Ident", Pattern: `[a-z][a-zA-Z0-9_@]*`},
	{Name: "Punct", Pattern: `[{}\[\],]`},
})

// node is a single term. Exactly one field is set.
type node struct {
	Pos lexer.Position

	Int   *string `  @Int`
	Atom  *string `| @Ident`
	QAtom *string `| @QAtom`
	Bin   *string `| @String`
	Tuple *tuple  `| @@`
	List  *list   `| @@`
}

type tuple struct {
	Elems []*node `"{" ( @@ ( "," @@ )* )? "}"`
}

type list struct {
	Elems []*node `"[" ( @@ ( "," @@ )* )? "]"`
}

// terms is a comma separated sequence of terms.
type terms struct {
	Elems []*node `( @@ ( "," @@ )* )?`
}

var (
	termParser  = participle.MustBuild[node](participle.Lexer(termLexer), participle.Elide("Whitespace"))
	termsParser = participle.MustBuild[terms](participle.Lexer(termLexer), participle.Elide("Whitespace"))
)
