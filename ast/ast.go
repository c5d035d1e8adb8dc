// Package ast defines the syntax tree produced by content-type parsers and
// consumed by the widget executor.
//
// The tree is deliberately loose: a small set of node kinds with a string
// attribute bag, so parsers for new content types can be registered without
// touching the executor.
package ast

// Kind identifies what a node represents.
type Kind string

const (
	// KindElement is a generic element with a tag, attributes and children.
	KindElement Kind = "element"
	// KindText is a literal text run.
	KindText Kind = "text"
	// KindLink is a wiki link; the target title is the "to" attribute.
	KindLink Kind = "link"
	// KindTransclude embeds another tiddler (or one of its fields); the
	// target is the "tiddler" attribute, optionally narrowed by "field" and
	// parsed in the mode named by "mode". Children act as fallback content.
	KindTransclude Kind = "transclude"
	// KindSet binds a variable ("name"/"value" attributes) for its subtree.
	KindSet Kind = "set"
)

// Node is one node of a syntax tree.
type Node struct {
	Kind     Kind
	Tag      string            // element tag, for KindElement
	Text     string            // literal text, for KindText
	Attr     map[string]string // attribute bag; nil when empty
	Children []*Node
	Block    bool // rendered as a block-level construct
}

// NewElement creates an element node.
func NewElement(tag string, children ...*Node) *Node {
	return &Node{Kind: KindElement, Tag: tag, Children: children}
}

// NewBlockElement creates a block-level element node.
func NewBlockElement(tag string, children ...*Node) *Node {
	n := NewElement(tag, children...)
	n.Block = true
	return n
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewLink creates a link node pointing at the given title.
func NewLink(to string, children ...*Node) *Node {
	return &Node{Kind: KindLink, Attr: map[string]string{"to": to}, Children: children}
}

// NewTransclude creates a transclusion node addressing a target title. The
// children, if any, render when the target is missing.
func NewTransclude(title string, children ...*Node) *Node {
	return &Node{Kind: KindTransclude, Attr: map[string]string{"tiddler": title}, Children: children}
}

// NewSet creates a variable-binding node wrapping the given children.
func NewSet(name, value string, children ...*Node) *Node {
	return &Node{Kind: KindSet, Attr: map[string]string{"name": name, "value": value}, Children: children}
}

// GetAttr returns an attribute value, or "" when absent.
func (n *Node) GetAttr(name string) string {
	if n.Attr == nil {
		return ""
	}
	return n.Attr[name]
}

// SetAttr sets an attribute, allocating the bag on first use.
func (n *Node) SetAttr(name, value string) {
	if n.Attr == nil {
		n.Attr = make(map[string]string, 2)
	}
	n.Attr[name] = value
}

// Walk visits n and every descendant depth-first, in child order. Returning
// false from fn stops the walk.
func Walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// WalkAll visits each root in order, as Walk does for one tree.
func WalkAll(roots []*Node, fn func(*Node) bool) {
	for _, n := range roots {
		if !Walk(n, fn) {
			return
		}
	}
}
