package bodystore

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/time/rate"
)

// DirOptions configures a DirLoader.
type DirOptions struct {
	// Extension is the plain-body file extension. Default ".tid".
	Extension string

	// LoadsPerSec caps external loads; 0 means unlimited. Lazy loads fire
	// synchronously from read paths, so a host serving many simultaneous
	// renders may want a ceiling.
	LoadsPerSec float64
}

// DirLoader reads bodies from files under a root directory, named after the
// (sanitized) title. Alongside the plain file, gzip (".gz") and lz4 (".lz4")
// variants are decoded transparently.
type DirLoader struct {
	root    string
	ext     string
	limiter *rate.Limiter
}

// NewDirLoader creates a loader rooted at the given directory.
func NewDirLoader(root string, optFns ...func(*DirOptions)) *DirLoader {
	opts := DirOptions{Extension: ".tid"}
	for _, fn := range optFns {
		fn(&opts)
	}
	l := &DirLoader{root: root, ext: opts.Extension}
	if opts.LoadsPerSec > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(opts.LoadsPerSec), 1)
	}
	return l
}

var _ Loader = (*DirLoader)(nil)

// Load implements Loader.
func (l *DirLoader) Load(ctx context.Context, title string) (string, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	base := filepath.Join(l.root, sanitizeTitle(title)+l.ext)

	if data, err := os.ReadFile(base); err == nil {
		return string(data), nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	if text, err := l.readGzip(base + ".gz"); err == nil {
		return text, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	if text, err := l.readLZ4(base + ".lz4"); err == nil {
		return text, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	return "", ErrNotFound
}

func (l *DirLoader) readGzip(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return "", err
	}
	defer func() { _ = zr.Close() }()

	data, err := io.ReadAll(zr)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *DirLoader) readLZ4(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(lz4.NewReader(f))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
