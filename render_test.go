package wikigo

import (
	"testing"

	"github.com/hupe1980/wikigo/parser"
	"github.com/hupe1980/wikigo/tiddler"
	"github.com/hupe1980/wikigo/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTiddler(t *testing.T) {
	s := New()
	s.Set(tiddler.New("A", tiddler.Fields{tiddler.FieldText: "! Hello"}))

	t.Run("block parse", func(t *testing.T) {
		tree := s.ParseTiddler("A")
		require.Len(t, tree, 1)
		assert.Equal(t, "h1", tree[0].Tag)
	})

	t.Run("inline parse is a separate cache entry", func(t *testing.T) {
		tree := s.ParseTiddler("A", Inline)
		require.Len(t, tree, 1)
		assert.Equal(t, "! Hello", tree[0].Text)
	})

	t.Run("tree is memoized per title", func(t *testing.T) {
		a := s.ParseTiddler("A")
		b := s.ParseTiddler("A")
		assert.Same(t, a[0], b[0])
	})

	t.Run("absent title", func(t *testing.T) {
		assert.Nil(t, s.ParseTiddler("nope"))
	})
}

func TestParseText(t *testing.T) {
	s := New()

	t.Run("unknown type falls back to wikitext", func(t *testing.T) {
		tree := s.ParseText("application/x-unknown", "''hi''")
		require.NotEmpty(t, tree)
	})

	t.Run("extension resolution", func(t *testing.T) {
		tree := s.ParseText(".txt", "hi")
		require.Len(t, tree, 1)
		assert.Equal(t, "pre", tree[0].Tag)
	})

	t.Run("registry without a default can miss", func(t *testing.T) {
		s2 := New(WithParserRegistry(parser.NewRegistry("")))
		assert.Nil(t, s2.ParseText("application/x-unknown", "hi"))
	})
}

func TestRenderText(t *testing.T) {
	s := New()

	t.Run("html output", func(t *testing.T) {
		got := s.RenderText(OutputHTML, tiddler.TypeWikiText, "''bold'' and [[B]]", nil)
		assert.Equal(t, `<p><strong>bold</strong> and <a class="tc-tiddlylink" href="#B">B</a></p>`, got)
	})

	t.Run("text escapes nothing", func(t *testing.T) {
		got := s.RenderText(OutputText, tiddler.TypeWikiText, "a < b", nil)
		assert.Equal(t, "a < b", got)
	})

	t.Run("html escapes content", func(t *testing.T) {
		got := s.RenderText(OutputHTML, tiddler.TypeWikiText, "a < b", nil)
		assert.Equal(t, "<p>a &lt; b</p>", got)
	})

	t.Run("formatted text keeps block structure", func(t *testing.T) {
		got := s.RenderText(OutputFormattedText, tiddler.TypeWikiText, "one\n\ntwo", nil)
		assert.Equal(t, "one\ntwo\n\n", got)
	})

	t.Run("variables reach transclusion", func(t *testing.T) {
		s.Set(tiddler.New("B", tiddler.Fields{tiddler.FieldText: "from B"}))

		got := s.RenderText(OutputText, tiddler.TypeWikiText, "{{}}",
			map[string]string{widget.VarCurrentTiddler: "B"})
		assert.Equal(t, "from B", got)
	})
}

func TestRenderTiddler(t *testing.T) {
	s := New()
	s.Set(tiddler.New("A", tiddler.Fields{tiddler.FieldText: "! Hello"}))
	s.Set(tiddler.New("Plain", tiddler.Fields{tiddler.FieldText: "Hello"}))
	s.Set(tiddler.New("B", tiddler.Fields{tiddler.FieldText: "includes {{Plain}}", "caption": "B cap"}))

	t.Run("html", func(t *testing.T) {
		got := s.RenderTiddler(OutputHTML, "A")
		assert.Equal(t, "<div><h1>Hello</h1></div>", got)
	})

	t.Run("plain text", func(t *testing.T) {
		assert.Equal(t, "Hello", s.RenderTiddler(OutputText, "A"))
	})

	t.Run("transclusion renders the target", func(t *testing.T) {
		assert.Equal(t, "includes Hello", s.RenderTiddler(OutputText, "B"))
	})

	t.Run("field render", func(t *testing.T) {
		got := s.RenderTiddler(OutputText, "B", func(o *TranscludeOptions) { o.Field = "caption" })
		assert.Equal(t, "B cap", got)
	})

	t.Run("missing tiddler renders empty", func(t *testing.T) {
		assert.Equal(t, "", s.RenderTiddler(OutputText, "nope"))
	})

	t.Run("self transclusion degrades to an error element", func(t *testing.T) {
		s.Set(tiddler.New("Loop", tiddler.Fields{tiddler.FieldText: "{{Loop}}"}))
		got := s.RenderTiddler(OutputHTML, "Loop")
		assert.Contains(t, got, "tc-error")
		assert.Contains(t, got, "Recursive transclusion error")
	})
}

func TestMakeTranscludeWidget(t *testing.T) {
	s := New()
	s.Set(tiddler.New("A", tiddler.Fields{tiddler.FieldText: "''hi''"}))

	t.Run("inline mode uses a span wrapper", func(t *testing.T) {
		w := s.MakeTranscludeWidget("A", func(o *TranscludeOptions) { o.Mode = "inline" })
		got := w.RenderContainer().InnerHTML()
		assert.Equal(t, "<span><strong>hi</strong></span>", got)
	})

	t.Run("block mode wraps block output", func(t *testing.T) {
		w := s.MakeTranscludeWidget("A")
		got := w.RenderContainer().InnerHTML()
		assert.Equal(t, "<div><p><strong>hi</strong></p></div>", got)
	})
}
