package wikigo

import (
	"testing"

	"github.com/hupe1980/wikigo/tiddler"
	"github.com/hupe1980/wikigo/upgrade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plugin(title, version string) *tiddler.Tiddler {
	return tiddler.New(title, tiddler.Fields{
		tiddler.FieldPluginType: "plugin",
		tiddler.FieldVersion:    version,
	})
}

func TestImport(t *testing.T) {
	t.Run("plain tiddlers always import", func(t *testing.T) {
		s := New()
		assert.True(t, s.Import(tiddler.New("A", nil)))
		assert.True(t, s.Import(tiddler.New("A", nil)))
		assert.True(t, s.Exists("A"))
	})

	t.Run("plugin downgrade is rejected", func(t *testing.T) {
		s := New()
		require.True(t, s.Import(plugin("P", "2.0.0")))

		assert.False(t, s.Import(plugin("P", "1.9.0")))

		got, _ := s.Get("P")
		assert.Equal(t, "2.0.0", got.Version())
	})

	t.Run("plugin upgrade and same version pass", func(t *testing.T) {
		s := New()
		require.True(t, s.Import(plugin("P", "1.0.0")))
		assert.True(t, s.Import(plugin("P", "1.0.0")))
		assert.True(t, s.Import(plugin("P", "1.1.0")))
	})

	t.Run("v prefix is tolerated", func(t *testing.T) {
		s := New()
		require.True(t, s.Import(plugin("P", "v2.0.0")))
		assert.False(t, s.Import(plugin("P", "v1.0.0")))
	})

	t.Run("unparseable versions disable the guard", func(t *testing.T) {
		s := New()
		require.True(t, s.Import(plugin("P", "2.0.0")))
		assert.True(t, s.Import(plugin("P", "not-a-version")))
	})

	t.Run("guard needs both sides to be plugins", func(t *testing.T) {
		s := New()
		require.True(t, s.Import(plugin("P", "2.0.0")))

		// Incoming plain tiddler replaces the plugin unconditionally.
		assert.True(t, s.Import(tiddler.New("P", nil)))
	})

	t.Run("nil is rejected", func(t *testing.T) {
		s := New()
		assert.False(t, s.Import(nil))
	})
}

func TestImportBatch(t *testing.T) {
	t.Run("upgraders can veto and message", func(t *testing.T) {
		s := New()

		veto := upgrade.Func(func(w upgrade.Wiki, titles []string, pending map[string]tiddler.Fields) map[string]string {
			msgs := make(map[string]string)
			for title := range pending {
				if title == "Blocked" {
					pending[title] = tiddler.Fields{}
					msgs[title] = "suppressed"
				}
			}
			return msgs
		})

		msgs := s.ImportBatch([]upgrade.Upgrader{veto}, map[string]tiddler.Fields{
			"Blocked": {tiddler.FieldText: "nope"},
			"Allowed": {tiddler.FieldText: "yes"},
		})

		assert.Equal(t, map[string]string{"Blocked": "suppressed"}, msgs)
		assert.False(t, s.Exists("Blocked"))
		assert.True(t, s.Exists("Allowed"))
	})

	t.Run("later upgraders win on message conflicts", func(t *testing.T) {
		s := New()

		first := upgrade.Func(func(upgrade.Wiki, []string, map[string]tiddler.Fields) map[string]string {
			return map[string]string{"T": "first"}
		})
		second := upgrade.Func(func(upgrade.Wiki, []string, map[string]tiddler.Fields) map[string]string {
			return map[string]string{"T": "second"}
		})

		msgs := s.ImportBatch([]upgrade.Upgrader{first, second}, map[string]tiddler.Fields{
			"T": {tiddler.FieldText: "x"},
		})
		assert.Equal(t, "second", msgs["T"])
	})

	t.Run("no upgraders imports everything", func(t *testing.T) {
		s := New()
		s.ImportBatch(nil, map[string]tiddler.Fields{
			"A": {tiddler.FieldText: "a"},
			"B": {tiddler.FieldText: "b"},
		})
		assert.Equal(t, 2, s.Len())
	})
}
