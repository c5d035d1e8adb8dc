package wikigo

import (
	"strings"

	"github.com/hupe1980/wikigo/tiddler"
)

// TextRef is a parsed text reference: a compact address for a tiddler's
// body, one of its fields ("Title!!field") or one item of its structured
// data ("Title##index"). An empty Title addresses the contextually supplied
// current tiddler.
type TextRef struct {
	Title string
	Field string
	Index string

	HasField bool
	HasIndex bool
}

// ParseTextRef parses a text reference. The separators are "!!" for fields
// and "##" for data indexes; text before the separator is the title.
func ParseTextRef(ref string) TextRef {
	if idx := strings.Index(ref, "!!"); idx >= 0 {
		return TextRef{Title: ref[:idx], Field: ref[idx+2:], HasField: true}
	}
	if idx := strings.Index(ref, "##"); idx >= 0 {
		return TextRef{Title: ref[:idx], Index: ref[idx+2:], HasIndex: true}
	}
	return TextRef{Title: ref}
}

// String renders the reference back to its compact form.
func (r TextRef) String() string {
	switch {
	case r.HasField:
		return r.Title + "!!" + r.Field
	case r.HasIndex:
		return r.Title + "##" + r.Index
	default:
		return r.Title
	}
}

// TextReference resolves a reference to literal text, returning def when the
// title, field or index is absent. currTitle supplies the title for
// references that omit one. The virtual field "title" resolves to the title
// itself, even for titles with no tiddler behind them.
func (s *Store) TextReference(ref, def, currTitle string) string {
	r := ParseTextRef(ref)
	title := r.Title
	if title == "" {
		title = currTitle
	}

	switch {
	case r.HasField:
		if r.Field == tiddler.FieldTitle {
			return title
		}
		t, ok := s.Get(title)
		if !ok {
			return def
		}
		v, ok := t.Field(r.Field)
		if !ok {
			return def
		}
		return v
	case r.HasIndex:
		return s.DataItemOr(title, r.Index, def)
	default:
		return s.TextOr(title, def)
	}
}

// SetTextReference writes back through the same addressing modes: a field
// reference replaces one field on a new tiddler value, an index reference
// rewrites the structured document as a whole, and a bare reference sets the
// body text.
func (s *Store) SetTextReference(ref, value, currTitle string) {
	r := ParseTextRef(ref)
	title := r.Title
	if title == "" {
		title = currTitle
	}
	if title == "" {
		return
	}

	switch {
	case r.HasField:
		s.setField(title, r.Field, value)
	case r.HasIndex:
		data := s.TiddlerDataOr(title, map[string]any{})
		next := make(map[string]any, len(data)+1)
		for k, v := range data {
			next[k] = v
		}
		next[r.Index] = value
		s.SetTiddlerData(title, next)
	default:
		s.setField(title, tiddler.FieldText, value)
	}
}

// DeleteTextReference removes the whole tiddler for a bare reference, or
// clears one field for a field reference. Index references are not
// deletable through this path and are ignored.
func (s *Store) DeleteTextReference(ref, currTitle string) {
	r := ParseTextRef(ref)
	title := r.Title
	if title == "" {
		title = currTitle
	}

	switch {
	case r.HasField:
		if t, ok := s.Get(title); ok {
			s.Set(t.WithoutField(r.Field))
		}
	case r.HasIndex:
		// Not addressable for deletion.
	default:
		s.Delete(title)
	}
}

// setField replaces one field on the titled tiddler, creating the tiddler
// when absent.
func (s *Store) setField(title, field, value string) {
	t, ok := s.Get(title)
	if !ok {
		t = tiddler.New(title, nil)
	}
	s.Set(t.With(tiddler.Fields{field: value}))
}
