package shape

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Parse tree produced by participle; converted to Group by build functions.

var listLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `::|[-+*/%(),;:\[\].]`},
})

var listParser = participle.MustBuild[listNode](
	participle.Lexer(listLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

type listNode struct {
	Bindings []*bindingNode `@@*`
}

type bindingNode struct {
	Pos     lexer.Position
	Mut     bool         `@"mut"?`
	Pattern *patternNode `@@ ":"`
	Shape   *shapeNode   `@@`
	Comma   bool         `@","?`
}

type patternNode struct {
	Pos   lexer.Position
	Name  *string           `  @Ident`
	Tuple *patternTupleNode `| @@`
}

type patternTupleNode struct {
	Open  bool               `@"("`
	Elems []*patternElemNode `@@* ")"`
}

type patternElemNode struct {
	Pos     lexer.Position
	Mut     bool         `@"mut"?`
	Pattern *patternNode `@@`
	Comma   bool         `@","?`
}

type shapeNode struct {
	Pos   lexer.Position
	Array *arrayNode `  @@`
	Tuple *tupleNode `| @@`
	Path  *pathNode  `| @@`
}

type arrayNode struct {
	Elem *shapeNode `"[" @@`
	Len  *exprNode  `( ";" @@ )? "]"`
}

type tupleNode struct {
	Open  bool             `@"("`
	Elems []*tupleElemNode `@@* ")"`
}

type tupleElemNode struct {
	Pos   lexer.Position
	Shape *shapeNode `@@`
	Comma bool       `@","?`
}

type pathNode struct {
	Parts []string `@Ident ( ( "::" | "." ) @Ident )*`
}

type exprNode struct {
	Left *termNode     `@@`
	Rest []*opTermNode `@@*`
}

type opTermNode struct {
	Pos  lexer.Position
	Op   string    `@( "+" | "-" )`
	Term *termNode `@@`
}

type termNode struct {
	Left *unaryNode     `@@`
	Rest []*opUnaryNode `@@*`
}

type opUnaryNode struct {
	Pos   lexer.Position
	Op    string     `@( "*" | "/" | "%" )`
	Unary *unaryNode `@@`
}

type unaryNode struct {
	Pos   lexer.Position
	Neg   *unaryNode `  "-" @@`
	Num   *int64     `| @Int`
	Name  *string    `| @Ident`
	Group *exprNode  `| "(" @@ ")"`
}
