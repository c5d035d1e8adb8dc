package wikigo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hupe1980/wikigo/tiddler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiddlerData(t *testing.T) {
	s := New()

	t.Run("json object", func(t *testing.T) {
		s.Set(tiddler.New("D", tiddler.Fields{
			tiddler.FieldText: `{"name": "wiki", "count": 2}`,
			tiddler.FieldType: tiddler.TypeJSON,
		}))

		data, ok := s.TiddlerData("D")
		require.True(t, ok)
		assert.Equal(t, "wiki", data["name"])
	})

	t.Run("json with comments and trailing commas", func(t *testing.T) {
		s.Set(tiddler.New("Relaxed", tiddler.Fields{
			tiddler.FieldText: "{\n  // a comment\n  \"key\": \"value\",\n}",
			tiddler.FieldType: tiddler.TypeJSON,
		}))

		data, ok := s.TiddlerData("Relaxed")
		require.True(t, ok)
		assert.Equal(t, "value", data["key"])
	})

	t.Run("dictionary", func(t *testing.T) {
		s.Set(tiddler.New("Dict", tiddler.Fields{
			tiddler.FieldText: "alpha: one\nbeta: two\nnot a pair\n",
			tiddler.FieldType: tiddler.TypeDictionary,
		}))

		data, ok := s.TiddlerData("Dict")
		require.True(t, ok)
		if diff := cmp.Diff(map[string]any{"alpha": "one", "beta": "two"}, data); diff != "" {
			t.Errorf("data mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed json yields not-ok", func(t *testing.T) {
		s.Set(tiddler.New("Bad", tiddler.Fields{
			tiddler.FieldText: "{not json",
			tiddler.FieldType: tiddler.TypeJSON,
		}))

		_, ok := s.TiddlerData("Bad")
		assert.False(t, ok)
		assert.Equal(t, map[string]any{"d": "1"}, s.TiddlerDataOr("Bad", map[string]any{"d": "1"}))
	})

	t.Run("non-data type yields not-ok", func(t *testing.T) {
		s.Set(tiddler.New("Wiki", tiddler.Fields{tiddler.FieldText: "! heading"}))
		_, ok := s.TiddlerData("Wiki")
		assert.False(t, ok)
	})

	t.Run("absent title yields not-ok", func(t *testing.T) {
		_, ok := s.TiddlerData("nope")
		assert.False(t, ok)
	})
}

func TestSetTiddlerData(t *testing.T) {
	t.Run("round trip through json", func(t *testing.T) {
		s := New()
		in := map[string]any{"a": "1", "b": "2"}
		s.SetTiddlerData("D", in)

		got, _ := s.Get("D")
		assert.Equal(t, tiddler.TypeJSON, got.Type())

		out, ok := s.TiddlerData("D")
		require.True(t, ok)
		if diff := cmp.Diff(in, out); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("dictionary tiddlers keep their format", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("Dict", tiddler.Fields{
			tiddler.FieldText: "alpha: one",
			tiddler.FieldType: tiddler.TypeDictionary,
		}))

		s.SetTiddlerData("Dict", map[string]any{"beta": "two", "alpha": "one"})

		got, _ := s.Get("Dict")
		assert.Equal(t, tiddler.TypeDictionary, got.Type())
		assert.Equal(t, "alpha: one\nbeta: two", got.Text())
	})

	t.Run("non-lifted fields survive", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("D", tiddler.Fields{"color": "red", tiddler.FieldType: tiddler.TypeJSON, tiddler.FieldText: "{}"}))
		s.SetTiddlerData("D", map[string]any{"k": "v"})

		got, _ := s.Get("D")
		assert.Equal(t, "red", got.FieldOr("color", ""))
	})
}

func TestDataItem(t *testing.T) {
	s := New()
	s.Set(tiddler.New("D", tiddler.Fields{
		tiddler.FieldText: `{"name": "wiki", "count": 2}`,
		tiddler.FieldType: tiddler.TypeJSON,
	}))

	v, ok := s.DataItem("D", "name")
	require.True(t, ok)
	assert.Equal(t, "wiki", v)

	t.Run("non-string values stringify as json", func(t *testing.T) {
		v, ok := s.DataItem("D", "count")
		require.True(t, ok)
		assert.Equal(t, "2", v)
	})

	t.Run("missing key", func(t *testing.T) {
		_, ok := s.DataItem("D", "nope")
		assert.False(t, ok)
		assert.Equal(t, "def", s.DataItemOr("D", "nope", "def"))
	})
}
