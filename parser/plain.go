package parser

import "github.com/hupe1980/wikigo/ast"

// Plain renders text verbatim: a pre block in block mode, a bare text run in
// inline mode. It serves text/plain and the structured-data types, whose raw
// source is shown rather than interpreted.
type Plain struct{}

// Parse implements Parser.
func (Plain) Parse(text string, opts Options) []*ast.Node {
	if opts.Inline {
		return []*ast.Node{ast.NewText(text)}
	}
	pre := ast.NewBlockElement("pre", ast.NewText(text))
	return []*ast.Node{pre}
}
