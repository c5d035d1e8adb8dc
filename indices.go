package wikigo

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/wikigo/ast"
	"github.com/hupe1980/wikigo/tiddler"
)

// Cache names used by the derived indices.
const (
	cacheLinks   = "links"
	cacheTagMap  = "tagmap"
	cacheTagList = "taglist-"
)

// Links returns the titles the tiddler links to: every link node in its
// block-mode parse tree with a literal target, deduplicated, in first-seen
// order. Memoized per-title.
func (s *Store) Links(title string) []string {
	v := s.PerTitleCache(title, cacheLinks, func() any {
		return s.extractLinks(title)
	})
	links, _ := v.([]string)
	return links
}

func (s *Store) extractLinks(title string) []string {
	tree := s.ParseTiddler(title)
	if tree == nil {
		return nil
	}
	var links []string
	seen := make(map[string]bool)
	ast.WalkAll(tree, func(n *ast.Node) bool {
		if n.Kind == ast.KindLink {
			if to := n.GetAttr("to"); to != "" && !seen[to] {
				seen[to] = true
				links = append(links, to)
			}
		}
		return true
	})
	return links
}

// Backlinks returns the stored titles whose link set contains target, in
// title order. Recomputed on every call; the per-title link sets it reads
// are cached, so the cost is one corpus walk.
func (s *Store) Backlinks(target string) []string {
	var sources []string
	s.Each(func(title string, _ *tiddler.Tiddler) bool {
		for _, link := range s.Links(title) {
			if link == target {
				sources = append(sources, title)
				break
			}
		}
		return true
	})
	return sources
}

// TagMap returns tag -> titles carrying it. Shadow tiddlers contribute only
// for titles not overridden by a stored tiddler; stored tiddlers follow.
// Memoized globally. The returned map is shared: treat it as read-only.
func (s *Store) TagMap() map[string][]string {
	v := s.GlobalCache(cacheTagMap, func() any {
		return s.buildTagMap()
	})
	m, _ := v.(map[string][]string)
	return m
}

func (s *Store) buildTagMap() map[string][]string {
	m := make(map[string][]string)
	add := func(title string, t *tiddler.Tiddler) {
		for _, tag := range t.Tags() {
			m[tag] = append(m[tag], title)
		}
	}
	for _, title := range s.ShadowTitles() {
		if s.Exists(title) {
			continue
		}
		if t, ok := s.Get(title); ok {
			add(title, t)
		}
	}
	s.Each(func(title string, t *tiddler.Tiddler) bool {
		add(title, t)
		return true
	})
	return m
}

// TitlesWithTag returns the titles carrying a tag, ordered by the list
// resolver with the tag's own tiddler as the ordering document. Memoized
// globally per tag.
func (s *Store) TitlesWithTag(tag string) []string {
	v := s.GlobalCache(cacheTagList+tag, func() any {
		return s.SortByList(s.TagMap()[tag], tag)
	})
	titles, _ := v.([]string)
	return titles
}

// MissingTitles returns every link target that is neither a stored nor a
// shadow tiddler, sorted. Computed on demand over the whole corpus.
func (s *Store) MissingTitles() []string {
	missing := roaring.New()
	s.Each(func(title string, _ *tiddler.Tiddler) bool {
		for _, link := range s.Links(title) {
			if !s.Exists(link) && !s.hasShadow(link) {
				missing.Add(s.titles.Intern(link))
			}
		}
		return true
	})
	return s.titlesOf(missing)
}

// OrphanTitles returns every stored title that no tiddler links to, sorted.
// Computed on demand over the whole corpus.
func (s *Store) OrphanTitles() []string {
	stored := roaring.New()
	linked := roaring.New()
	s.Each(func(title string, _ *tiddler.Tiddler) bool {
		stored.Add(s.titles.Intern(title))
		for _, link := range s.Links(title) {
			linked.Add(s.titles.Intern(link))
		}
		return true
	})
	stored.AndNot(linked)
	return s.titlesOf(stored)
}

func (s *Store) hasShadow(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.shadows[title]
	return ok
}

// titlesOf maps a bitmap of interned ids back to sorted titles.
func (s *Store) titlesOf(bm *roaring.Bitmap) []string {
	out := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		if name, ok := s.titles.Name(it.Next()); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
