// Package parser parses Snake source text into the surface syntax tree
// defined by internal/ast. It is a collaborator the CORE in spec.md treats
// as external, implemented here so the CLI/LSP/REPL have something to feed
// the checker.
package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"snake/internal/ast"
	"snake/internal/errs"
	"snake/internal/lexer"
)

var grammarParser = buildParser()

func buildParser() *participle.Parser[Expr] {
	p, err := participle.Build[Expr](
		participle.Lexer(lexer.SnakeLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(4),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build Snake parser: %w", err))
	}
	return p
}

// ParseFile reads and parses the named file.
func ParseFile(path string) (*ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source text named filename (used only for error
// reporting) into a surface ast.Program, or a *errs.CompileError.
func ParseSource(filename, source string) (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if be, ok := r.(buildError); ok {
				err = &errs.CompileError{Code: errs.ErrorParse, Message: be.msg, Position: be.pos, Length: 1}
				return
			}
			panic(r)
		}
	}()

	tree, parseErr := grammarParser.ParseString(filename, source)
	if parseErr != nil {
		return nil, toCompileError(parseErr)
	}
	return buildProgram(tree), nil
}

func toCompileError(err error) *errs.CompileError {
	if pe, ok := err.(participle.Error); ok {
		p := pe.Position()
		return errs.ParseError(ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}, err)
	}
	return errs.ParseError(ast.Position{}, err)
}
