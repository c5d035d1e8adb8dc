// Package tiddler defines the immutable document value stored by a wiki store.
//
// A tiddler is a titled record with a typed body and an open set of metadata
// fields. Tiddlers are values: every mutation produces a new *Tiddler and the
// store swaps the title slot, so holders of an old pointer keep seeing the
// old revision.
package tiddler

import (
	"sort"
	"strings"
)

// Well-known field names.
const (
	FieldTitle      = "title"
	FieldText       = "text"
	FieldType       = "type"
	FieldTags       = "tags"
	FieldList       = "list"
	FieldListBefore = "list-before"
	FieldListAfter  = "list-after"
	FieldCreated    = "created"
	FieldModified   = "modified"
	FieldDraftOf    = "draft.of"
	FieldPluginType = "plugin-type"
	FieldVersion    = "version"
)

// Content types the engine knows natively.
const (
	TypeWikiText   = "text/vnd.tiddlywiki"
	TypePlain      = "text/plain"
	TypeJSON       = "application/json"
	TypeDictionary = "application/x-tiddler-dictionary"
)

// Fields is a bag of field name -> value pairs used to construct tiddlers.
// The keys "title", "text" and "type" are lifted into the typed parts of the
// tiddler; everything else is kept verbatim.
type Fields map[string]string

// Tiddler is an immutable document value. Construct with New and derive
// modified copies with With/WithBody/WithoutField.
type Tiddler struct {
	title  string
	typ    string
	body   Body
	fields map[string]string
}

// New creates a tiddler from a field bag. A "text" key becomes a loaded body
// (absent means an explicitly empty body); "type" defaults to the native wiki
// markup type when empty.
func New(title string, fields Fields) *Tiddler {
	t := &Tiddler{
		title:  title,
		body:   EmptyBody(),
		fields: make(map[string]string, len(fields)),
	}
	for k, v := range fields {
		switch k {
		case FieldTitle:
			// The title argument is authoritative.
		case FieldText:
			t.body = LoadedBody(v)
		case FieldType:
			t.typ = v
		default:
			t.fields[k] = v
		}
	}
	return t
}

// Title returns the unique title of the tiddler.
func (t *Tiddler) Title() string { return t.title }

// Type returns the content type, defaulting to the native wiki markup type.
func (t *Tiddler) Type() string {
	if t.typ == "" {
		return TypeWikiText
	}
	return t.typ
}

// RawType returns the content type exactly as stored (may be empty).
func (t *Tiddler) RawType() string { return t.typ }

// Body returns the tri-state body.
func (t *Tiddler) Body() Body { return t.body }

// Text returns the body text, or "" for empty and pending bodies. Callers
// that need lazy-load semantics should go through the store instead.
func (t *Tiddler) Text() string { return t.body.Text() }

// Field returns the named field value. The virtual field "title" always
// resolves to the title, "text" to the body text and "type" to the raw type.
func (t *Tiddler) Field(name string) (string, bool) {
	switch name {
	case FieldTitle:
		return t.title, true
	case FieldText:
		if !t.body.IsLoaded() {
			return "", t.body.IsEmpty()
		}
		return t.body.Text(), true
	case FieldType:
		return t.typ, t.typ != ""
	}
	v, ok := t.fields[name]
	return v, ok
}

// FieldOr returns the named field value, or def when absent.
func (t *Tiddler) FieldOr(name, def string) string {
	if v, ok := t.Field(name); ok {
		return v
	}
	return def
}

// HasField reports whether the named field is present.
func (t *Tiddler) HasField(name string) bool {
	_, ok := t.Field(name)
	return ok
}

// FieldNames returns the sorted names of all explicit fields, excluding the
// lifted title/text/type parts.
func (t *Tiddler) FieldNames() []string {
	names := make([]string, 0, len(t.fields))
	for k := range t.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AllFields returns a field bag snapshot including title, type and text.
// Mutating the returned map does not affect the tiddler.
func (t *Tiddler) AllFields() Fields {
	f := make(Fields, len(t.fields)+3)
	for k, v := range t.fields {
		f[k] = v
	}
	f[FieldTitle] = t.title
	if t.typ != "" {
		f[FieldType] = t.typ
	}
	if t.body.IsLoaded() {
		f[FieldText] = t.body.Text()
	}
	return f
}

// With derives a new tiddler with the given fields overriding the current
// ones. A "title" key retitles the copy; "text" and "type" behave as in New.
func (t *Tiddler) With(fields Fields) *Tiddler {
	nt := &Tiddler{
		title:  t.title,
		typ:    t.typ,
		body:   t.body,
		fields: make(map[string]string, len(t.fields)+len(fields)),
	}
	for k, v := range t.fields {
		nt.fields[k] = v
	}
	for k, v := range fields {
		switch k {
		case FieldTitle:
			nt.title = v
		case FieldText:
			nt.body = LoadedBody(v)
		case FieldType:
			nt.typ = v
		default:
			nt.fields[k] = v
		}
	}
	return nt
}

// WithBody derives a new tiddler carrying the given body.
func (t *Tiddler) WithBody(b Body) *Tiddler {
	nt := t.With(nil)
	nt.body = b
	return nt
}

// WithoutField derives a new tiddler with the named field cleared. Clearing
// "text" yields an empty body; clearing "type" restores the default type.
func (t *Tiddler) WithoutField(name string) *Tiddler {
	nt := t.With(nil)
	switch name {
	case FieldTitle:
		// Titles cannot be cleared.
	case FieldText:
		nt.body = EmptyBody()
	case FieldType:
		nt.typ = ""
	default:
		delete(nt.fields, name)
	}
	return nt
}

// Tags returns the parsed tag list, in order.
func (t *Tiddler) Tags() []string {
	return ParseStringList(t.fields[FieldTags])
}

// HasTag reports whether the tiddler carries the given tag.
func (t *Tiddler) HasTag(tag string) bool {
	for _, got := range t.Tags() {
		if got == tag {
			return true
		}
	}
	return false
}

// List returns the parsed "list" field, in order.
func (t *Tiddler) List() []string {
	return ParseStringList(t.fields[FieldList])
}

// IsDraft reports whether the tiddler is a draft of another title.
func (t *Tiddler) IsDraft() bool {
	_, ok := t.fields[FieldDraftOf]
	return ok
}

// DraftOf returns the title this draft shadows, or "".
func (t *Tiddler) DraftOf() string { return t.fields[FieldDraftOf] }

// IsPlugin reports whether the tiddler carries a plugin-type field, making it
// subject to the guarded import version check.
func (t *Tiddler) IsPlugin() bool {
	_, ok := t.fields[FieldPluginType]
	return ok
}

// Version returns the plugin version field, or "".
func (t *Tiddler) Version() string { return t.fields[FieldVersion] }

// ParseStringList parses a title list field value: titles separated by
// whitespace, with [[double bracket]] quoting for titles containing spaces.
func ParseStringList(s string) []string {
	var out []string
	i := 0
	for i < len(s) {
		switch {
		case s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r':
			i++
		case strings.HasPrefix(s[i:], "[["):
			end := strings.Index(s[i+2:], "]]")
			if end < 0 {
				// Unterminated bracket, treat the rest as one bare token.
				out = append(out, s[i:])
				return out
			}
			out = append(out, s[i+2:i+2+end])
			i += end + 4
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' && s[j] != '\n' && s[j] != '\r' {
				j++
			}
			out = append(out, s[i:j])
			i = j
		}
	}
	return out
}

// FormatStringList renders a title list back into field-value form,
// bracket-quoting any title containing whitespace.
func FormatStringList(titles []string) string {
	var sb strings.Builder
	for i, title := range titles {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if strings.ContainsAny(title, " \t\n\r") || title == "" {
			sb.WriteString("[[")
			sb.WriteString(title)
			sb.WriteString("]]")
		} else {
			sb.WriteString(title)
		}
	}
	return sb.String()
}
