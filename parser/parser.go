// Package parser dispatches raw text to a syntax tree by content type.
//
// Parsers are registered against content-type strings; lookup falls back from
// the exact type to a file-extension-derived type and finally to the default
// wiki markup type. An unresolvable type yields no tree at all, which callers
// treat as "nothing to render".
package parser

import (
	"strings"

	"github.com/hupe1980/wikigo/ast"
)

// Options controls a single parse.
type Options struct {
	// Inline restricts parsing to inline constructs; the result carries no
	// block-level wrappers. Block and inline trees for the same text are
	// distinct values and are cached independently by the store.
	Inline bool

	// SourceURI optionally records where the text canonically lives (used by
	// lazily loaded media tiddlers). Parsers may attach it to their output.
	SourceURI string
}

// Parser turns raw text into a parse-tree forest.
// Implementations must be stateless and safe for concurrent use.
type Parser interface {
	Parse(text string, opts Options) []*ast.Node
}

// Registry maps content types to parsers. It is rebuilt by a single Init call
// and read-only afterwards.
type Registry struct {
	parsers     map[string]Parser
	extensions  map[string]string // ".tid" -> content type
	defaultType string
}

// Registration pairs a content type with its parser and the file extensions
// that imply it.
type Registration struct {
	ContentType string
	Parser      Parser
	Extensions  []string
}

// NewRegistry creates an empty registry whose fallback type is the native
// wiki markup type.
func NewRegistry(defaultType string) *Registry {
	return &Registry{
		parsers:     make(map[string]Parser),
		extensions:  make(map[string]string),
		defaultType: defaultType,
	}
}

// Init replaces the registry contents with the given registrations.
func (r *Registry) Init(regs ...Registration) {
	r.parsers = make(map[string]Parser, len(regs))
	r.extensions = make(map[string]string)
	for _, reg := range regs {
		r.Register(reg.ContentType, reg.Parser, reg.Extensions...)
	}
}

// Register adds one parser. Later registrations for the same type win.
func (r *Registry) Register(contentType string, p Parser, extensions ...string) {
	r.parsers[contentType] = p
	for _, ext := range extensions {
		r.extensions[strings.ToLower(ext)] = contentType
	}
}

// DefaultType returns the fallback content type.
func (r *Registry) DefaultType() string { return r.defaultType }

// Lookup resolves a content type to a parser: exact match, then the type
// derived from a file extension spelling, then the default type. ok is false
// when nothing resolves.
func (r *Registry) Lookup(contentType string) (Parser, bool) {
	if contentType == "" {
		contentType = r.defaultType
	}
	if p, ok := r.parsers[contentType]; ok {
		return p, true
	}
	if derived, ok := r.extensions[strings.ToLower(contentType)]; ok {
		if p, ok := r.parsers[derived]; ok {
			return p, true
		}
	}
	p, ok := r.parsers[r.defaultType]
	return p, ok
}

// Parse resolves the type and parses text. ok is false when no parser
// resolves; the returned forest is nil in that case.
func (r *Registry) Parse(contentType, text string, opts Options) ([]*ast.Node, bool) {
	p, ok := r.Lookup(contentType)
	if !ok {
		return nil, false
	}
	return p.Parse(text, opts), true
}
