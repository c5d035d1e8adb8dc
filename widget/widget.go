// Package widget executes a syntax tree against a document-model sink.
//
// A widget wraps a parse-tree forest together with a variable scope chain.
// Variables are introduced by synthetic "set" wrapper nodes (see Wrap) or
// inherited from a parent widget; transclusion re-enters the pipeline for the
// target tiddler with currentTiddler rebound.
package widget

import (
	"github.com/hupe1980/wikigo/ast"
	"github.com/hupe1980/wikigo/dom"
)

// VarCurrentTiddler names the variable carrying the transclusion context.
const VarCurrentTiddler = "currentTiddler"

// Resolver supplies tiddler content to the executor. The store implements it;
// tests may substitute a stub.
type Resolver interface {
	// ParseForTransclusion parses the titled tiddler, inline or block mode.
	// A nil forest means there is nothing to render.
	ParseForTransclusion(title string, inline bool) []*ast.Node

	// FieldText returns the named field of the titled tiddler, or "".
	FieldText(title, field string) string
}

// Options configures widget construction.
type Options struct {
	// Document supplies element creation; a fresh headless document is used
	// when nil.
	Document *dom.Document

	// Parent provides an inherited variable scope chain.
	Parent *Widget

	// Variables are bound in the widget's own scope, visible to the whole
	// wrapped tree.
	Variables map[string]string
}

// Widget is a runtime wrapper around a parse tree.
type Widget struct {
	tree     []*ast.Node
	resolver Resolver
	doc      *dom.Document
	parent   *Widget
	vars     map[string]string
	// transcluding tracks titles on the current transclusion path so a
	// self-including tiddler degrades to an error element instead of looping.
	transcluding map[string]bool
}

// New creates a widget for the given forest.
func New(tree []*ast.Node, resolver Resolver, optFns ...func(*Options)) *Widget {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	doc := opts.Document
	if doc == nil && opts.Parent != nil {
		doc = opts.Parent.doc
	}
	if doc == nil {
		doc = dom.NewDocument()
	}
	w := &Widget{
		tree:     tree,
		resolver: resolver,
		doc:      doc,
		parent:   opts.Parent,
	}
	if opts.Parent != nil {
		w.transcluding = opts.Parent.transcluding
	}
	if w.transcluding == nil {
		w.transcluding = make(map[string]bool)
	}
	if len(opts.Variables) > 0 {
		w.vars = make(map[string]string, len(opts.Variables))
		for k, v := range opts.Variables {
			w.vars[k] = v
		}
	}
	return w
}

// Wrap nests the forest inside one synthetic set-variable node per entry, so
// each binding is visible to the next and to the wrapped tree. Binding order
// is the order of names; callers pass names explicitly because map iteration
// order would leak into the tree shape.
func Wrap(tree []*ast.Node, names []string, values map[string]string) []*ast.Node {
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		tree = []*ast.Node{ast.NewSet(name, values[name], tree...)}
	}
	return tree
}

// Variable resolves a variable through the scope chain.
func (w *Widget) Variable(name string) (string, bool) {
	for cur := w; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Render executes the widget, appending output under parent.
func (w *Widget) Render(parent *dom.Node) {
	scope := &scope{widget: w}
	for _, n := range w.tree {
		w.renderNode(parent, n, scope)
	}
}

// RenderContainer executes the widget into a fresh detached container
// element and returns it.
func (w *Widget) RenderContainer() *dom.Node {
	container := w.doc.CreateElement("div")
	w.Render(container)
	return container
}

// scope is a lightweight variable frame introduced by set nodes during one
// render pass.
type scope struct {
	widget *Widget
	parent *scope
	name   string
	value  string
}

func (s *scope) lookup(name string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name && cur.name != "" {
			return cur.value, true
		}
	}
	return s.widget.Variable(name)
}

func (w *Widget) renderNode(parent *dom.Node, n *ast.Node, sc *scope) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindText:
		parent.AppendChild(w.doc.CreateTextNode(n.Text))
	case ast.KindSet:
		child := &scope{widget: w, parent: sc, name: n.GetAttr("name"), value: n.GetAttr("value")}
		for _, c := range n.Children {
			w.renderNode(parent, c, child)
		}
	case ast.KindElement:
		el := w.doc.CreateElement(n.Tag)
		for name, value := range n.Attr {
			el.SetAttribute(name, value)
		}
		for _, c := range n.Children {
			w.renderNode(el, c, sc)
		}
		parent.AppendChild(el)
	case ast.KindLink:
		w.renderLink(parent, n, sc)
	case ast.KindTransclude:
		w.renderTransclude(parent, n, sc)
	}
}

func (w *Widget) renderLink(parent *dom.Node, n *ast.Node, sc *scope) {
	to := n.GetAttr("to")
	a := w.doc.CreateElement("a")
	a.SetAttribute("class", "tc-tiddlylink")
	a.SetAttribute("href", "#"+to)
	if len(n.Children) == 0 {
		a.AppendChild(w.doc.CreateTextNode(to))
	}
	for _, c := range n.Children {
		w.renderNode(a, c, sc)
	}
	parent.AppendChild(a)
}

func (w *Widget) renderTransclude(parent *dom.Node, n *ast.Node, sc *scope) {
	title := n.GetAttr("tiddler")
	if title == "" {
		title, _ = sc.lookup(VarCurrentTiddler)
	}
	field := n.GetAttr("field")
	inline := !n.Block || n.GetAttr("mode") == "inline"
	if n.GetAttr("mode") == "block" {
		inline = false
	}

	if field != "" && field != "text" {
		if text := w.resolver.FieldText(title, field); text != "" {
			parent.AppendChild(w.doc.CreateTextNode(text))
			return
		}
		w.renderFallback(parent, n, sc)
		return
	}

	if w.transcluding[title] {
		err := w.doc.CreateElement("span")
		err.SetAttribute("class", "tc-error")
		err.AppendChild(w.doc.CreateTextNode("Recursive transclusion error in transclude widget"))
		parent.AppendChild(err)
		return
	}

	tree := w.resolver.ParseForTransclusion(title, inline)
	if tree == nil {
		w.renderFallback(parent, n, sc)
		return
	}

	w.transcluding[title] = true
	defer delete(w.transcluding, title)

	child := &scope{widget: w, parent: sc, name: VarCurrentTiddler, value: title}
	for _, c := range tree {
		w.renderNode(parent, c, child)
	}
}

// renderFallback renders the transclusion node's own children, the "content
// if target is missing" path.
func (w *Widget) renderFallback(parent *dom.Node, n *ast.Node, sc *scope) {
	for _, c := range n.Children {
		w.renderNode(parent, c, sc)
	}
}
