package wikigo

import "errors"

var (
	// ErrNotFound is returned by Fetch when no stored or shadow tiddler
	// carries the title. Most read paths prefer (value, ok) returns or
	// caller-supplied defaults; Fetch exists for callers that want an error.
	ErrNotFound = errors.New("wikigo: tiddler not found")
)
