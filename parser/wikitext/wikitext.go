// Package wikitext parses the engine's native wiki markup.
//
// The grammar covered here is the working subset the store's own machinery
// depends on: paragraphs, headings, horizontal rules, fenced code, flat and
// nested lists, bold/italic/inline code, [[links]] and {{transclusions}}.
package wikitext

import (
	"strings"

	"github.com/hupe1980/wikigo/ast"
	"github.com/hupe1980/wikigo/parser"
)

// Type is the content type this parser serves.
const Type = "text/vnd.tiddlywiki"

// Parser parses wiki markup into a syntax tree.
type Parser struct{}

// New creates a wikitext parser.
func New() *Parser { return &Parser{} }

var _ parser.Parser = (*Parser)(nil)

// Parse implements parser.Parser. In inline mode the text is parsed as a
// single run of inline content with no block wrappers.
func (p *Parser) Parse(text string, opts parser.Options) []*ast.Node {
	if opts.Inline {
		return parseInline(text)
	}
	return parseBlocks(strings.Split(text, "\n"))
}

func parseBlocks(lines []string) []*ast.Node {
	var out []*ast.Node
	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimRight(line, " \t")
		switch {
		case strings.TrimSpace(trimmed) == "":
			i++
		case strings.HasPrefix(trimmed, "!"):
			out = append(out, parseHeading(trimmed))
			i++
		case strings.HasPrefix(trimmed, "```"):
			node, next := parseFence(lines, i)
			out = append(out, node)
			i = next
		case isRule(trimmed):
			out = append(out, ast.NewBlockElement("hr"))
			i++
		case strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "#"):
			node, next := parseList(lines, i, trimmed[0], 1)
			out = append(out, node)
			i = next
		case isBlockTransclusion(trimmed):
			node := parseTransclusion(strings.TrimSpace(trimmed))
			node.Block = true
			out = append(out, node)
			i++
		default:
			node, next := parseParagraph(lines, i)
			out = append(out, node)
			i = next
		}
	}
	return out
}

func isRule(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < 3 {
		return false
	}
	for _, r := range s {
		if r != '-' {
			return false
		}
	}
	return true
}

func isBlockTransclusion(line string) bool {
	s := strings.TrimSpace(line)
	return strings.HasPrefix(s, "{{") && strings.HasSuffix(s, "}}") &&
		!strings.Contains(s[2:len(s)-2], "{{")
}

func parseHeading(line string) *ast.Node {
	level := 0
	for level < len(line) && line[level] == '!' && level < 6 {
		level++
	}
	content := strings.TrimSpace(line[level:])
	h := ast.NewBlockElement("h"+string(rune('0'+level)), parseInline(content)...)
	return h
}

func parseFence(lines []string, start int) (*ast.Node, int) {
	var body []string
	i := start + 1
	for i < len(lines) && !strings.HasPrefix(strings.TrimRight(lines[i], " \t"), "```") {
		body = append(body, lines[i])
		i++
	}
	if i < len(lines) {
		i++ // closing fence
	}
	pre := ast.NewBlockElement("pre",
		ast.NewElement("code", ast.NewText(strings.Join(body, "\n"))))
	return pre, i
}

// parseList consumes consecutive marker-prefixed lines at the given nesting
// depth, recursing for deeper runs.
func parseList(lines []string, start int, marker byte, depth int) (*ast.Node, int) {
	tag := "ul"
	if marker == '#' {
		tag = "ol"
	}
	list := ast.NewBlockElement(tag)
	i := start
	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")
		level := markerDepth(line, marker)
		if level == 0 {
			break
		}
		if level < depth {
			break
		}
		if level > depth {
			sub, next := parseList(lines, i, marker, depth+1)
			if n := len(list.Children); n > 0 {
				last := list.Children[n-1]
				last.Children = append(last.Children, sub)
			} else {
				li := ast.NewBlockElement("li", sub)
				list.Children = append(list.Children, li)
			}
			i = next
			continue
		}
		content := strings.TrimSpace(line[depth:])
		li := ast.NewBlockElement("li", parseInline(content)...)
		list.Children = append(list.Children, li)
		i++
	}
	return list, i
}

func markerDepth(line string, marker byte) int {
	n := 0
	for n < len(line) && line[n] == marker {
		n++
	}
	return n
}

func parseParagraph(lines []string, start int) (*ast.Node, int) {
	var runs []string
	i := start
	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "!") ||
			strings.HasPrefix(line, "*") || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "```") || isRule(line) {
			break
		}
		runs = append(runs, line)
		i++
	}
	p := ast.NewBlockElement("p", parseInline(strings.Join(runs, "\n"))...)
	return p, i
}

// inline markup

func parseInline(text string) []*ast.Node {
	var out []*ast.Node
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			out = append(out, ast.NewText(plain.String()))
			plain.Reset()
		}
	}
	i := 0
	for i < len(text) {
		rest := text[i:]
		switch {
		case strings.HasPrefix(rest, "[["):
			end := strings.Index(rest[2:], "]]")
			if end < 0 {
				plain.WriteString(rest)
				i = len(text)
				continue
			}
			flush()
			out = append(out, parseLink(rest[2:2+end]))
			i += end + 4
		case strings.HasPrefix(rest, "{{"):
			end := strings.Index(rest[2:], "}}")
			if end < 0 {
				plain.WriteString(rest)
				i = len(text)
				continue
			}
			flush()
			out = append(out, parseTransclusion(rest[:end+4]))
			i += end + 4
		case strings.HasPrefix(rest, "''"):
			node, n, ok := parseSpan(rest, "''", "strong")
			if !ok {
				plain.WriteString("''")
				i += 2
				continue
			}
			flush()
			out = append(out, node)
			i += n
		case strings.HasPrefix(rest, "//"):
			node, n, ok := parseSpan(rest, "//", "em")
			if !ok {
				plain.WriteString("//")
				i += 2
				continue
			}
			flush()
			out = append(out, node)
			i += n
		case rest[0] == '`':
			end := strings.IndexByte(rest[1:], '`')
			if end < 0 {
				plain.WriteByte('`')
				i++
				continue
			}
			flush()
			out = append(out, ast.NewElement("code", ast.NewText(rest[1:1+end])))
			i += end + 2
		default:
			plain.WriteByte(text[i])
			i++
		}
	}
	flush()
	return out
}

// parseSpan parses a delimiter-wrapped run like ''bold'' into an element,
// recursing for nested inline markup.
func parseSpan(rest, delim, tag string) (*ast.Node, int, bool) {
	end := strings.Index(rest[len(delim):], delim)
	if end < 0 {
		return nil, 0, false
	}
	inner := rest[len(delim) : len(delim)+end]
	node := ast.NewElement(tag, parseInline(inner)...)
	return node, end + 2*len(delim), true
}

// parseLink parses the inside of [[...]]: either a bare target or
// "caption|target".
func parseLink(body string) *ast.Node {
	caption, target := body, body
	if idx := strings.Index(body, "|"); idx >= 0 {
		caption, target = body[:idx], body[idx+1:]
	}
	return ast.NewLink(target, ast.NewText(caption))
}

// parseTransclusion parses "{{title}}", "{{title!!field}}" or
// "{{title||template}}" (the template part is carried as an attribute).
func parseTransclusion(src string) *ast.Node {
	body := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(src), "{{"), "}}")
	node := &ast.Node{Kind: ast.KindTransclude}
	if idx := strings.Index(body, "||"); idx >= 0 {
		node.SetAttr("template", body[idx+2:])
		body = body[:idx]
	}
	if idx := strings.Index(body, "!!"); idx >= 0 {
		node.SetAttr("field", body[idx+2:])
		body = body[:idx]
	}
	node.SetAttr("tiddler", body)
	return node
}
