package interner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterner(t *testing.T) {
	in := New()

	t.Run("ids are stable", func(t *testing.T) {
		a := in.Intern("A")
		b := in.Intern("B")
		assert.NotEqual(t, a, b)
		assert.Equal(t, a, in.Intern("A"))
	})

	t.Run("lookup does not assign", func(t *testing.T) {
		_, ok := in.Lookup("never seen")
		assert.False(t, ok)
		assert.Equal(t, 2, in.Len())
	})

	t.Run("name round trip", func(t *testing.T) {
		id := in.Intern("C")
		name, ok := in.Name(id)
		require.True(t, ok)
		assert.Equal(t, "C", name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, ok := in.Name(9999)
		assert.False(t, ok)
	})
}
