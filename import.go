package wikigo

import (
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hupe1980/wikigo/tiddler"
	"github.com/hupe1980/wikigo/upgrade"
)

// Import is Set with a downgrade guard: when both the incoming and the
// existing tiddler carry a plugin-type and a version field, the write is
// rejected unless the incoming version compares greater-or-equal under
// semantic-version ordering. Rejection is signalled by the false return, not
// an error. Versions that fail to parse as semver disable the guard for
// that comparison.
func (s *Store) Import(t *tiddler.Tiddler) bool {
	if t == nil {
		return false
	}
	start := time.Now()

	accepted := true
	if existing, ok := s.Get(t.Title()); ok {
		if t.IsPlugin() && existing.IsPlugin() &&
			t.Version() != "" && existing.Version() != "" {
			accepted = versionGE(t.Version(), existing.Version())
		}
	}
	if accepted {
		s.Set(t)
	}

	s.metrics.RecordImport(time.Since(start), accepted)
	s.logger.LogImport(t.Title(), accepted)
	return accepted
}

// versionGE reports incoming >= existing under semver ordering. Unparseable
// versions cannot be ordered, so the guard passes them through.
func versionGE(incoming, existing string) bool {
	in, err := semver.NewVersion(strings.TrimPrefix(incoming, "v"))
	if err != nil {
		return true
	}
	ex, err := semver.NewVersion(strings.TrimPrefix(existing, "v"))
	if err != nil {
		return true
	}
	return in.Compare(ex) >= 0
}

// ImportBatch runs the registered upgraders over an incoming batch and then
// imports what survives. pending maps title -> incoming field bag; an
// upgrader may rewrite entries or empty one to suppress that import. The
// returned map merges every upgrader's per-title messages, later upgraders
// winning on conflicts.
func (s *Store) ImportBatch(upgraders []upgrade.Upgrader, pending map[string]tiddler.Fields) map[string]string {
	titles := make([]string, 0, len(pending))
	for title := range pending {
		titles = append(titles, title)
	}

	messages := make(map[string]string)
	for _, up := range upgraders {
		for title, msg := range up.Upgrade(s, titles, pending) {
			messages[title] = msg
		}
	}

	for title, fields := range pending {
		if len(fields) == 0 {
			continue
		}
		s.Import(tiddler.New(title, fields))
	}
	return messages
}

var _ upgrade.Wiki = (*Store)(nil)
