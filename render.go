package wikigo

import (
	"sort"
	"time"

	"github.com/hupe1980/wikigo/ast"
	"github.com/hupe1980/wikigo/dom"
	"github.com/hupe1980/wikigo/parser"
	"github.com/hupe1980/wikigo/parser/wikitext"
	"github.com/hupe1980/wikigo/tiddler"
	"github.com/hupe1980/wikigo/widget"
)

// Render output types.
const (
	// OutputHTML serializes the rendered container to HTML.
	OutputHTML = "text/html"
	// OutputFormattedText serializes to plain text with block structure.
	OutputFormattedText = "text/plain-formatted"
	// OutputText serializes to unformatted plain text.
	OutputText = "text/plain"
)

// Parse-tree cache names. Block and inline trees are independent entries.
const (
	cacheParseTree       = "parsetree"
	cacheParseTreeInline = "parsetree-inline"
)

// DefaultParsers builds the standard registry: native wiki markup (also the
// fallback type), plain text, and the structured-data types rendered
// verbatim.
func DefaultParsers() *parser.Registry {
	r := parser.NewRegistry(wikitext.Type)
	r.Init(
		parser.Registration{ContentType: wikitext.Type, Parser: wikitext.New(), Extensions: []string{".tid"}},
		parser.Registration{ContentType: tiddler.TypePlain, Parser: parser.Plain{}, Extensions: []string{".txt"}},
		parser.Registration{ContentType: tiddler.TypeJSON, Parser: parser.Plain{}, Extensions: []string{".json"}},
		parser.Registration{ContentType: tiddler.TypeDictionary, Parser: parser.Plain{}},
	)
	return r
}

// Parsers returns the store's parser registry.
func (s *Store) Parsers() *parser.Registry { return s.parsers }

// ParseText parses raw text under a content type. Resolution falls back
// from the exact type to an extension-derived type and finally the native
// wiki markup type; nil means nothing resolved and there is nothing to
// render.
func (s *Store) ParseText(contentType, text string, optFns ...func(*parser.Options)) []*ast.Node {
	opts := parser.Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	tree, ok := s.parsers.Parse(contentType, text, opts)
	if !ok {
		return nil
	}
	return tree
}

// ParseTiddler parses a tiddler's body under its own content type, forcing
// lazy body resolution first. The tree is memoized per-title, with block and
// inline modes as independent cache entries.
func (s *Store) ParseTiddler(title string, optFns ...func(*parser.Options)) []*ast.Node {
	opts := parser.Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	name := cacheParseTree
	if opts.Inline {
		name = cacheParseTreeInline
	}

	v := s.PerTitleCache(title, name, func() any {
		t, ok := s.Get(title)
		if !ok {
			return []*ast.Node(nil)
		}
		text := s.Text(title) // forces lazy resolution
		return s.ParseText(t.Type(), text, func(o *parser.Options) { *o = opts })
	})
	tree, _ := v.([]*ast.Node)
	return tree
}

// Inline marks a parse as inline-only.
func Inline(o *parser.Options) { o.Inline = true }

// MakeWidget wraps a parse tree in one synthetic set-variable node per
// variable (sorted name order, each binding visible to the next and to the
// tree) and instantiates the runtime widget against the given options.
func (s *Store) MakeWidget(tree []*ast.Node, variables map[string]string, optFns ...func(*widget.Options)) *widget.Widget {
	if len(variables) > 0 {
		names := make([]string, 0, len(variables))
		for name := range variables {
			names = append(names, name)
		}
		sort.Strings(names)
		tree = widget.Wrap(tree, names, variables)
	}
	return widget.New(tree, s, optFns...)
}

// TranscludeOptions configures MakeTranscludeWidget.
type TranscludeOptions struct {
	// Field transcludes one field instead of the body.
	Field string
	// Mode forces "block" or "inline" parsing of the target.
	Mode string
	// Children is optional fallback content rendered when the target is
	// missing.
	Children []*ast.Node
	// Variables are bound around the synthesized tree.
	Variables map[string]string
	// Widget customizes widget construction (document, parent scope).
	Widget []func(*widget.Options)
}

// MakeTranscludeWidget synthesizes the minimal parse tree for "include this
// tiddler's content here": one wrapper element holding one transclude node,
// fed through the same widget path as any other tree.
func (s *Store) MakeTranscludeWidget(title string, optFns ...func(*TranscludeOptions)) *widget.Widget {
	opts := TranscludeOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	tr := ast.NewTransclude(title, opts.Children...)
	if opts.Field != "" {
		tr.SetAttr("field", opts.Field)
	}
	wrapperTag := "div"
	if opts.Mode == "inline" {
		wrapperTag = "span"
		tr.SetAttr("mode", "inline")
	} else {
		tr.Block = true
		if opts.Mode != "" {
			tr.SetAttr("mode", opts.Mode)
		}
	}
	wrapper := ast.NewBlockElement(wrapperTag, tr)

	return s.MakeWidget([]*ast.Node{wrapper}, opts.Variables, opts.Widget...)
}

// RenderText parses raw text under contentType and renders it to the
// requested output type. Unresolvable content types render to "".
func (s *Store) RenderText(outputType, contentType, text string, variables map[string]string) string {
	start := time.Now()
	tree := s.ParseText(contentType, text)
	if tree == nil {
		return ""
	}
	w := s.MakeWidget(tree, variables)
	out := serialize(w.RenderContainer(), outputType)
	s.metrics.RecordRender(time.Since(start))
	return out
}

// RenderTiddler renders a tiddler's parsed body to the requested output
// type. Missing tiddlers and unresolvable types render to "".
func (s *Store) RenderTiddler(outputType, title string, optFns ...func(*TranscludeOptions)) string {
	start := time.Now()
	w := s.MakeTranscludeWidget(title, optFns...)
	out := serialize(w.RenderContainer(), outputType)
	s.metrics.RecordRender(time.Since(start))
	s.logger.LogRender(title, outputType)
	return out
}

func serialize(container *dom.Node, outputType string) string {
	switch outputType {
	case OutputFormattedText:
		return container.FormattedText()
	case OutputText:
		return container.RawText()
	default:
		return container.InnerHTML()
	}
}

// widget.Resolver implementation

var _ widget.Resolver = (*Store)(nil)

// ParseForTransclusion implements widget.Resolver.
func (s *Store) ParseForTransclusion(title string, inline bool) []*ast.Node {
	if _, ok := s.Get(title); !ok {
		return nil
	}
	if inline {
		return s.ParseTiddler(title, Inline)
	}
	return s.ParseTiddler(title)
}

// FieldText implements widget.Resolver.
func (s *Store) FieldText(title, field string) string {
	t, ok := s.Get(title)
	if !ok {
		return ""
	}
	return t.FieldOr(field, "")
}
