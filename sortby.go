package wikigo

import (
	"strings"

	"github.com/hupe1980/wikigo/tiddler"
)

// SortByList orders candidates using an explicit ordering document plus
// per-tiddler positioning hints.
//
// The ordering document's body is read as one title per line (an absent
// document means an empty list). The result is built in three steps:
//
//  1. Candidates that appear in the ordering list, in the list's order.
//  2. Remaining candidates, in their original relative order.
//  3. One left-to-right pass over that sequence applying each title's own
//     list-before / list-after fields. Every relocation is a remove and
//     reinsert against the current, already partially reordered sequence, so
//     later hints see earlier relocations' results. Conflicting or cyclic
//     hints resolve by application order, not by any global optimum; an
//     unresolvable hint leaves the title where it is.
//
// An empty candidate slice yields an empty result regardless of the
// ordering document.
func (s *Store) SortByList(candidates []string, listTitle string) []string {
	if len(candidates) == 0 {
		return []string{}
	}

	ordering := s.orderingList(listTitle)

	inCandidates := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		inCandidates[c] = true
	}

	result := make([]string, 0, len(candidates))
	placed := make(map[string]bool, len(candidates))
	for _, title := range ordering {
		if inCandidates[title] && !placed[title] {
			placed[title] = true
			result = append(result, title)
		}
	}
	for _, title := range candidates {
		if !placed[title] {
			placed[title] = true
			result = append(result, title)
		}
	}

	// Hint pass over a snapshot of the seeded sequence: each title is
	// processed exactly once, in sequence order, while relocations mutate
	// the live slice.
	snapshot := make([]string, len(result))
	copy(snapshot, result)
	for _, title := range snapshot {
		t, ok := s.Get(title)
		if !ok {
			continue
		}
		before, hasBefore := t.Field(tiddler.FieldListBefore)
		after, hasAfter := t.Field(tiddler.FieldListAfter)

		cur := indexOf(result, title)
		if cur < 0 {
			continue
		}

		var newPos int
		switch {
		case hasBefore && before == "":
			newPos = 0
		case hasAfter && after == "":
			newPos = len(result)
		case hasBefore:
			newPos = indexOf(result, before)
			if newPos < 0 {
				continue
			}
		case hasAfter:
			newPos = indexOf(result, after)
			if newPos < 0 {
				continue
			}
			newPos++
		default:
			continue
		}

		result = append(result[:cur], result[cur+1:]...)
		if newPos > cur {
			newPos--
		}
		if newPos > len(result) {
			newPos = len(result)
		}
		result = append(result, "")
		copy(result[newPos+1:], result[newPos:])
		result[newPos] = title
	}

	return result
}

// orderingList reads the ordering document: one title per visual line,
// surrounding whitespace trimmed, blank lines skipped.
func (s *Store) orderingList(listTitle string) []string {
	t, ok := s.Get(listTitle)
	if !ok {
		return nil
	}
	var out []string
	for _, line := range strings.Split(t.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func indexOf(titles []string, title string) int {
	for i, t := range titles {
		if t == title {
			return i
		}
	}
	return -1
}
