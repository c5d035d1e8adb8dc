package wikigo

import (
	"regexp"
	"strings"
	"time"

	"github.com/hupe1980/wikigo/tiddler"
)

// tagSeparator joins the tag list for matching. A non-printable separator
// prevents a term from matching across tag boundaries.
const tagSeparator = "\x01"

// CandidateSource supplies the title/tiddler pairs a search scans. The
// default is every stored tiddler in title order.
type CandidateSource func(yield func(title string, t *tiddler.Tiddler) bool)

// SearchOptions controls query compilation and candidate handling.
type SearchOptions struct {
	// Literal compiles the whole query as one pattern instead of splitting
	// on whitespace. An empty literal query matches every candidate.
	Literal bool

	// CaseSensitive disables the default case-insensitive matching.
	CaseSensitive bool

	// Field restricts matching to one named field. When empty, each term is
	// tested against the title, the joined tag list and, for textual content
	// types only, the body text.
	Field string

	// Invert flips selection to candidates NOT matching the query.
	Invert bool

	// Exclude removes specific titles from the result after matching.
	Exclude []string

	// Source overrides the store's candidate source for this search.
	Source CandidateSource
}

// Search filters candidates against the compiled query and returns matching
// titles. Every term must match (AND semantics) unless Invert is set.
func (s *Store) Search(query string, optFns ...func(*SearchOptions)) []string {
	start := time.Now()
	opts := SearchOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	terms := compileSearch(query, opts)

	source := opts.Source
	if source == nil {
		source = s.source
	}
	if source == nil {
		source = s.storedSource
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, title := range opts.Exclude {
		excluded[title] = true
	}

	var results []string
	source(func(title string, t *tiddler.Tiddler) bool {
		match := s.matchTiddler(t, terms, opts)
		if opts.Invert {
			match = !match
		}
		if match && !excluded[title] {
			results = append(results, title)
		}
		return true
	})

	s.metrics.RecordSearch(len(terms), time.Since(start))
	s.logger.LogSearch(query, len(results))
	return results
}

// compileSearch turns the query into per-term regular expressions: one
// pattern for literal mode, one per whitespace-separated term otherwise.
func compileSearch(query string, opts SearchOptions) []*regexp.Regexp {
	flags := "(?i)"
	if opts.CaseSensitive {
		flags = ""
	}

	var sources []string
	if opts.Literal {
		sources = []string{query}
	} else {
		sources = strings.Fields(query)
	}

	terms := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(flags + regexp.QuoteMeta(src))
		if err != nil {
			continue
		}
		terms = append(terms, re)
	}
	return terms
}

func (s *Store) matchTiddler(t *tiddler.Tiddler, terms []*regexp.Regexp, opts SearchOptions) bool {
	if opts.Field != "" {
		value := t.FieldOr(opts.Field, "")
		for _, re := range terms {
			if !re.MatchString(value) {
				return false
			}
		}
		return true
	}

	title := t.Title()
	tags := strings.Join(t.Tags(), tagSeparator)
	var body string
	if isTextualType(t.Type()) {
		body = s.Text(title)
	}

	for _, re := range terms {
		if re.MatchString(title) || re.MatchString(tags) || (body != "" && re.MatchString(body)) {
			continue
		}
		return false
	}
	return true
}

// isTextualType reports whether body text participates in default matching.
func isTextualType(typ string) bool {
	switch {
	case typ == "", strings.HasPrefix(typ, "text/"):
		return true
	case typ == tiddler.TypeJSON, typ == tiddler.TypeDictionary:
		return true
	case typ == "application/javascript", typ == "application/xml":
		return true
	default:
		return false
	}
}

// storedSource is the default candidate source: every stored tiddler, in
// title order.
func (s *Store) storedSource(yield func(title string, t *tiddler.Tiddler) bool) {
	s.Each(yield)
}
