package wikigo

import (
	"log/slog"

	"github.com/hupe1980/wikigo/bodystore"
	"github.com/hupe1980/wikigo/codec"
	"github.com/hupe1980/wikigo/parser"
	"github.com/hupe1980/wikigo/tiddler"
)

type options struct {
	codec     codec.Codec
	logger    *Logger
	metrics   MetricsCollector
	scheduler Scheduler
	loader    bodystore.Loader
	shadows   []*tiddler.Tiddler
	parsers   *parser.Registry
	source    CandidateSource
}

// Option configures store construction.
type Option func(*options)

// WithCodec configures the codec used for structured-data payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithScheduler replaces the deferred-flush scheduler. The default is a
// TickScheduler drained by Store.Tick; hosts with their own event loop can
// supply an adapter, and ImmediateScheduler flushes inside the mutating call.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithBodyLoader wires a lazy body loader. The store registers a lazyLoad
// listener that fetches pending bodies through the loader synchronously.
func WithBodyLoader(l bodystore.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithShadows seeds the built-in fallback tiddlers. A shadow is visible only
// while no stored tiddler carries the same title.
func WithShadows(shadows ...*tiddler.Tiddler) Option {
	return func(o *options) {
		o.shadows = append(o.shadows, shadows...)
	}
}

// WithParserRegistry replaces the parser registry. The default registry
// serves the native wiki markup, plain text and the structured-data types.
func WithParserRegistry(r *parser.Registry) Option {
	return func(o *options) {
		o.parsers = r
	}
}

// WithCandidateSource replaces the default search candidate source ("every
// stored tiddler, title order").
func WithCandidateSource(src CandidateSource) Option {
	return func(o *options) {
		o.source = src
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:   codec.Default,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
