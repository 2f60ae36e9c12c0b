// Package cst is the external collaborator the engine design treats as a
// given: a parser that turns PowerShell source text into a concrete syntax
// tree. It exists in-repo only because this module has no tree-sitter
// PowerShell grammar available; it is deliberately kept out of the
// engine's own size budget, the same way the original's tree-sitter
// grammar lives outside its Rust core.
package cst

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/minusone-go/minusone/tree"
)

// Parser parses a PowerShell subset into a tree.Node CST.
type Parser struct {
	p *participle.Parser[program]
}

// New builds a Parser, the same two-step construction
// (lexer.MustStateful, then participle.Build) the teacher's parser.New
// uses for its YARA grammar.
func New() (*Parser, error) {
	lex := newLexer()
	p, err := participle.Build[program](
		participle.Lexer(lex),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "LineContinuation"),
		participle.UseLookahead(8),
	)
	if err != nil {
		return nil, fmt.Errorf("building parser: %w", err)
	}
	return &Parser{p: p}, nil
}

// Parse parses source into a CST rooted at a "program" node.
func (p *Parser) Parse(source string) (*tree.Node, error) {
	prog, err := p.p.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("parsing powershell source: %w", err)
	}
	conv := newConverter()
	return conv.program(prog), nil
}
