// Package dom provides a headless document-model sink for the render
// pipeline: element creation, attribute and text mutation, and serialization
// to HTML or plain text.
//
// The widget executor is agnostic to whether its sink is live or offline;
// this package is the offline implementation and doubles as the reference for
// what a live sink must expose.
package dom

import (
	"html"
	"sort"
	"strings"
)

// Document creates nodes. All nodes rendered into one tree should come from
// the same document.
type Document struct{}

// NewDocument creates a headless document.
func NewDocument() *Document { return &Document{} }

// CreateElement creates a detached element with the given tag.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{tag: strings.ToLower(tag)}
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *Node {
	return &Node{text: text, isText: true}
}

// Node is either an element or a text node.
type Node struct {
	tag      string
	text     string
	isText   bool
	attrs    map[string]string
	children []*Node
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool { return n.isText }

// Tag returns the element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// SetAttribute sets an attribute on an element node. Text nodes ignore it.
func (n *Node) SetAttribute(name, value string) {
	if n.isText {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string, 2)
	}
	n.attrs[name] = value
}

// Attribute returns an attribute value, or "" when absent.
func (n *Node) Attribute(name string) string { return n.attrs[name] }

// SetText replaces the content of a text node.
func (n *Node) SetText(text string) {
	if n.isText {
		n.text = text
	}
}

// AppendChild appends a child to an element node.
func (n *Node) AppendChild(child *Node) {
	if n.isText || child == nil {
		return
	}
	n.children = append(n.children, child)
}

// Children returns the child list. The slice must not be mutated.
func (n *Node) Children() []*Node { return n.children }

// voidTags render without a closing tag.
var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "link": true, "meta": true,
}

// OuterHTML serializes the node including its own tag.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

// InnerHTML serializes the node's children only. This is the "text/html"
// render output for a container element.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, c := range n.children {
		c.writeHTML(&sb)
	}
	return sb.String()
}

func (n *Node) writeHTML(sb *strings.Builder) {
	if n.isText {
		sb.WriteString(html.EscapeString(n.text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.tag)
	// Sorted attribute order keeps serialization deterministic.
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteByte(' ')
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(n.attrs[name]))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	if voidTags[n.tag] {
		return
	}
	for _, c := range n.children {
		c.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}

// blockTags get a trailing newline in formatted text output.
var blockTags = map[string]bool{
	"p": true, "div": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "li": true, "ul": true, "ol": true, "pre": true,
	"blockquote": true, "hr": true, "table": true, "tr": true,
}

// FormattedText serializes the subtree as plain text with block structure:
// block elements terminate lines and list items get a leading marker.
func (n *Node) FormattedText() string {
	var sb strings.Builder
	n.writeFormatted(&sb)
	return sb.String()
}

func (n *Node) writeFormatted(sb *strings.Builder) {
	if n.isText {
		sb.WriteString(n.text)
		return
	}
	switch n.tag {
	case "li":
		sb.WriteString("* ")
	case "br":
		sb.WriteByte('\n')
		return
	case "hr":
		sb.WriteString("---\n")
		return
	}
	for _, c := range n.children {
		c.writeFormatted(sb)
	}
	if blockTags[n.tag] {
		sb.WriteByte('\n')
	}
}

// RawText serializes the subtree as unformatted plain text: the concatenation
// of every text run, nothing else.
func (n *Node) RawText() string {
	var sb strings.Builder
	n.writeRaw(&sb)
	return sb.String()
}

func (n *Node) writeRaw(sb *strings.Builder) {
	if n.isText {
		sb.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.writeRaw(sb)
	}
}
