package wikigo

import (
	"sort"
	"strings"

	"github.com/hupe1980/wikigo/codec"
	"github.com/hupe1980/wikigo/tiddler"
	"github.com/tailscale/hujson"
)

const cacheData = "data"

// TiddlerData parses a tiddler's body as structured data: a JSON object for
// "application/json" (comments and trailing commas tolerated), or a flat
// key: value dictionary for "application/x-tiddler-dictionary". ok is false
// for absent titles, non-data types and malformed payloads; parse failures
// never propagate. Memoized per-title; treat the returned map as read-only.
func (s *Store) TiddlerData(title string) (map[string]any, bool) {
	v := s.PerTitleCache(title, cacheData, func() any {
		return s.parseData(title)
	})
	m, _ := v.(map[string]any)
	return m, m != nil
}

// TiddlerDataOr is TiddlerData with a caller-supplied default.
func (s *Store) TiddlerDataOr(title string, def map[string]any) map[string]any {
	if m, ok := s.TiddlerData(title); ok {
		return m
	}
	return def
}

func (s *Store) parseData(title string) map[string]any {
	t, ok := s.Get(title)
	if !ok {
		return nil
	}
	text := s.Text(title)

	switch t.Type() {
	case tiddler.TypeJSON:
		std, err := hujson.Standardize([]byte(text))
		if err != nil {
			return nil
		}
		var m map[string]any
		if err := s.codec.Unmarshal(std, &m); err != nil {
			return nil
		}
		return m
	case tiddler.TypeDictionary:
		return parseDictionary(text)
	default:
		return nil
	}
}

// parseDictionary reads "key: value" lines. Lines without a colon are
// skipped; later keys win.
func parseDictionary(text string) map[string]any {
	m := make(map[string]any)
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		m[key] = strings.TrimSpace(line[idx+1:])
	}
	return m
}

// SetTiddlerData writes structured data back to a tiddler. If the existing
// tiddler is already a dictionary, the dictionary format is kept; otherwise
// the payload is written as JSON. Non-lifted fields of an existing tiddler
// survive the rewrite.
func (s *Store) SetTiddlerData(title string, data map[string]any) {
	existing, ok := s.Get(title)

	if ok && existing.Type() == tiddler.TypeDictionary {
		s.Set(existing.With(tiddler.Fields{
			tiddler.FieldText: formatDictionary(data),
			tiddler.FieldType: tiddler.TypeDictionary,
		}))
		return
	}

	payload, err := s.codec.Marshal(data)
	if err != nil {
		return
	}
	fields := tiddler.Fields{
		tiddler.FieldText: string(payload),
		tiddler.FieldType: tiddler.TypeJSON,
	}
	if ok {
		s.Set(existing.With(fields))
	} else {
		s.Set(tiddler.New(title, fields))
	}
}

// formatDictionary renders data in dictionary form, keys sorted for
// determinism. Non-string values are JSON-stringified.
func formatDictionary(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(stringifyDataItem(data[k]))
	}
	return sb.String()
}

// DataItem returns one named item of a tiddler's structured data as text.
func (s *Store) DataItem(title, index string) (string, bool) {
	data, ok := s.TiddlerData(title)
	if !ok {
		return "", false
	}
	v, ok := data[index]
	if !ok {
		return "", false
	}
	return stringifyDataItem(v), true
}

// DataItemOr is DataItem with a caller-supplied default.
func (s *Store) DataItemOr(title, index, def string) string {
	if v, ok := s.DataItem(title, index); ok {
		return v
	}
	return def
}

func stringifyDataItem(v any) string {
	if str, ok := v.(string); ok {
		return str
	}
	b, err := codec.Default.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
