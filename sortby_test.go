package wikigo

import (
	"testing"

	"github.com/hupe1980/wikigo/tiddler"
	"github.com/stretchr/testify/assert"
)

func TestSortByList(t *testing.T) {
	t.Run("ordering document seeds the result", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("Order", tiddler.Fields{tiddler.FieldText: "X\nY"}))

		got := s.SortByList([]string{"Y", "X", "Z"}, "Order")
		assert.Equal(t, []string{"X", "Y", "Z"}, got)
	})

	t.Run("absent ordering document keeps candidate order", func(t *testing.T) {
		s := New()
		got := s.SortByList([]string{"b", "a", "c"}, "nope")
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("empty candidates yield empty result", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("Order", tiddler.Fields{tiddler.FieldText: "X\nY"}))
		assert.Empty(t, s.SortByList(nil, "Order"))
	})

	t.Run("ordering entries outside the candidates are skipped", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("Order", tiddler.Fields{tiddler.FieldText: "Ghost\nB\nA"}))

		got := s.SortByList([]string{"A", "B"}, "Order")
		assert.Equal(t, []string{"B", "A"}, got)
	})

	t.Run("blank and padded lines are tolerated", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("Order", tiddler.Fields{tiddler.FieldText: "  B  \n\n A\n"}))

		got := s.SortByList([]string{"A", "B"}, "Order")
		assert.Equal(t, []string{"B", "A"}, got)
	})
}

func TestSortByListHints(t *testing.T) {
	t.Run("list-before a title", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("Order", tiddler.Fields{tiddler.FieldText: "X\nY"}))
		s.Set(tiddler.New("Z", tiddler.Fields{tiddler.FieldListBefore: "X"}))

		got := s.SortByList([]string{"Y", "X", "Z"}, "Order")
		assert.Equal(t, []string{"Z", "X", "Y"}, got)
	})

	t.Run("list-after a title", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("A", tiddler.Fields{tiddler.FieldListAfter: "C"}))

		got := s.SortByList([]string{"A", "B", "C"}, "nope")
		assert.Equal(t, []string{"B", "C", "A"}, got)
	})

	t.Run("empty list-before means front", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("C", tiddler.Fields{tiddler.FieldListBefore: ""}))

		got := s.SortByList([]string{"A", "B", "C"}, "nope")
		assert.Equal(t, []string{"C", "A", "B"}, got)
	})

	t.Run("empty list-after means end", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("A", tiddler.Fields{tiddler.FieldListAfter: ""}))

		got := s.SortByList([]string{"A", "B", "C"}, "nope")
		assert.Equal(t, []string{"B", "C", "A"}, got)
	})

	t.Run("hint naming an absent title is a no-op", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("A", tiddler.Fields{tiddler.FieldListBefore: "Ghost"}))

		got := s.SortByList([]string{"A", "B"}, "nope")
		assert.Equal(t, []string{"A", "B"}, got)
	})

	t.Run("later hints see earlier relocations", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("B", tiddler.Fields{tiddler.FieldListBefore: "A"}))
		s.Set(tiddler.New("C", tiddler.Fields{tiddler.FieldListBefore: "B"}))

		// B moves before A first; C then lands before the relocated B.
		got := s.SortByList([]string{"A", "B", "C"}, "nope")
		assert.Equal(t, []string{"C", "B", "A"}, got)
	})
}
