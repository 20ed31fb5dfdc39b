package expr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Expression is a chain of terms joined by AND, OR, AND NOT or OR NOT.
type Expression struct {
	Pos  lexer.Position
	Head *Term    `@@`
	Tail []*Chain `@@*`
}

// Chain is a connector followed by a term.
type Chain struct {
	Op   string `@("AND" | "OR")`
	Not  bool   `@"NOT"?`
	Term *Term  `@@`
}

// Term is a parenthesized expression or a single comparison.
type Term struct {
	Group      *Expression `  "(" @@ ")"`
	Comparison *Comparison `| @@`
}

// Comparison compares a column with an operand or an IN list.
type Comparison struct {
	Pos    lexer.Position
	Column string `@Ident`
	RHS    *RHS   `@@`
}

// RHS is the right-hand side of a comparison.
type RHS struct {
	In      *InList  `  @@`
	Compare *Compare `| @@`
}

// InList is IN (...) or NOT IN (...).
type InList struct {
	Not    bool       `@"NOT"? "IN"`
	Values []*Operand `"(" @@ ("," @@)* ")"`
}

// Compare is a binary operator with one operand.
type Compare struct {
	Op    string   `@Operator`
	Value *Operand `@@`
}

// Operand is a literal or a column reference prefixed with "@".
type Operand struct {
	Column *string `  "@" @Ident`
	Number *string `| @Number`
	String *string `| @String`
	Bool   *string `| @("TRUE" | "FALSE")`
	Null   bool    `| @"NULL"`
}
