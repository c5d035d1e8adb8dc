package wikigo

import (
	"testing"

	"github.com/hupe1980/wikigo/tiddler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerTitleCache(t *testing.T) {
	t.Run("memoizes until the title changes", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("A", nil))

		computes := 0
		get := func() any {
			return s.PerTitleCache("A", "thing", func() any {
				computes++
				return computes
			})
		}

		assert.Equal(t, 1, get())
		assert.Equal(t, 1, get())
		require.Equal(t, 1, computes)

		s.Set(tiddler.New("A", nil))
		assert.Equal(t, 2, get())
		assert.Equal(t, 2, computes)
	})

	t.Run("other titles keep their entries", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("A", nil))
		s.Set(tiddler.New("B", nil))

		computesB := 0
		getB := func() any {
			return s.PerTitleCache("B", "thing", func() any {
				computesB++
				return "b"
			})
		}
		getB()

		s.Set(tiddler.New("A", nil)) // touches A only
		getB()
		assert.Equal(t, 1, computesB)
	})

	t.Run("names are independent", func(t *testing.T) {
		s := New()
		a := s.PerTitleCache("T", "one", func() any { return 1 })
		b := s.PerTitleCache("T", "two", func() any { return 2 })
		assert.Equal(t, 1, a)
		assert.Equal(t, 2, b)
	})
}

func TestGlobalCache(t *testing.T) {
	t.Run("any change drops everything", func(t *testing.T) {
		s := New()

		computes := 0
		get := func() any {
			return s.GlobalCache("corpus", func() any {
				computes++
				return computes
			})
		}

		get()
		get()
		require.Equal(t, 1, computes)

		s.Set(tiddler.New("unrelated", nil))
		get()
		assert.Equal(t, 2, computes)
	})

	t.Run("delete also invalidates", func(t *testing.T) {
		s := New()
		s.Set(tiddler.New("A", nil))

		computes := 0
		get := func() any {
			return s.GlobalCache("corpus", func() any {
				computes++
				return nil
			})
		}
		get()
		s.Delete("A")
		get()
		assert.Equal(t, 2, computes)
	})
}

func TestClearCaches(t *testing.T) {
	s := New()
	s.Set(tiddler.New("A", nil))

	perTitle, global := 0, 0
	s.PerTitleCache("A", "x", func() any { perTitle++; return nil })
	s.GlobalCache("y", func() any { global++; return nil })

	s.ClearCaches()

	s.PerTitleCache("A", "x", func() any { perTitle++; return nil })
	s.GlobalCache("y", func() any { global++; return nil })

	assert.Equal(t, 2, perTitle)
	assert.Equal(t, 2, global)
}

func TestCacheReentrantInit(t *testing.T) {
	// An initializer may fill a different cache entry while computing.
	s := New()

	v := s.PerTitleCache("T", "outer", func() any {
		inner := s.PerTitleCache("T", "inner", func() any { return 1 })
		return inner.(int) + 1
	})
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, s.PerTitleCache("T", "inner", func() any { return -1 }))
}
