// Package lexer tokenizes Snake source text for the participle-driven
// grammar in internal/parser.
package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SnakeLexer is a stateful, regex-rule tokenizer generalizing the shape of
// a typical participle grammar lexer (one "Root" state, ordered rules,
// longest-match-first within a rule) to Snake's surface syntax.
var SnakeLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Int", `[0-9]+`, nil},
		{"Operator", `(:=|<=|>=|==|!=|&&|\|\|)`, nil},
		{"Punctuation", `[{}\[\](),;:=+\-*<>!]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
