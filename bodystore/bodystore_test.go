package bodystore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoader(t *testing.T) {
	l := NewMemoryLoader()
	l.Put("A", "body of A")

	t.Run("hit", func(t *testing.T) {
		text, err := l.Load(context.Background(), "A")
		require.NoError(t, err)
		assert.Equal(t, "body of A", text)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := l.Load(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("overwrite", func(t *testing.T) {
		l.Put("A", "updated")
		text, _ := l.Load(context.Background(), "A")
		assert.Equal(t, "updated", text)
	})
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func writeLZ4(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := lz4.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Plain.tid"), []byte("plain body"), 0o644))
	writeGzip(t, filepath.Join(dir, "Zipped.tid.gz"), "gzip body")
	writeLZ4(t, filepath.Join(dir, "Framed.tid.lz4"), "lz4 body")

	l := NewDirLoader(dir)

	t.Run("plain file", func(t *testing.T) {
		text, err := l.Load(ctx, "Plain")
		require.NoError(t, err)
		assert.Equal(t, "plain body", text)
	})

	t.Run("gzip fallback", func(t *testing.T) {
		text, err := l.Load(ctx, "Zipped")
		require.NoError(t, err)
		assert.Equal(t, "gzip body", text)
	})

	t.Run("lz4 fallback", func(t *testing.T) {
		text, err := l.Load(ctx, "Framed")
		require.NoError(t, err)
		assert.Equal(t, "lz4 body", text)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := l.Load(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("plain wins over compressed", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Both.tid"), []byte("plain"), 0o644))
		writeGzip(t, filepath.Join(dir, "Both.tid.gz"), "compressed")

		text, err := l.Load(ctx, "Both")
		require.NoError(t, err)
		assert.Equal(t, "plain", text)
	})
}

func TestDirLoaderOptions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.txt"), []byte("x"), 0o644))

	t.Run("custom extension", func(t *testing.T) {
		l := NewDirLoader(dir, func(o *DirOptions) { o.Extension = ".txt" })
		text, err := l.Load(context.Background(), "A")
		require.NoError(t, err)
		assert.Equal(t, "x", text)
	})

	t.Run("rate limit honors context cancellation", func(t *testing.T) {
		l := NewDirLoader(dir, func(o *DirOptions) {
			o.Extension = ".txt"
			o.LoadsPerSec = 0.001
		})

		ctx, cancel := context.WithCancel(context.Background())

		// First load consumes the burst; the second blocks on the limiter
		// until the context is cancelled.
		_, err := l.Load(ctx, "A")
		require.NoError(t, err)

		cancel()
		_, err = l.Load(ctx, "A")
		assert.Error(t, err)
	})
}

func TestSanitizeTitle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_b_c.tid"), []byte("safe"), 0o644))

	l := NewDirLoader(dir)
	text, err := l.Load(context.Background(), "a/b:c")
	require.NoError(t, err)
	assert.Equal(t, "safe", text)
}
