package expr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ExprLexer tokenizes condition expressions.
var ExprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(?i:and|or|not|in|true|false|null)\b`},
	{Name: "Operator", Pattern: `<>|!=|>=|<=|=|<|>`},
	{Name: "String", Pattern: `'(?:''|[^'])*'|"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*(?:\.[\p{L}_][\p{L}\p{N}_]*)*`},
	{Name: "Punct", Pattern: `[(),@]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
