package spemath

import (
	"io"
	"log/slog"
)

// Option configures the pipeline stages. The same option set is accepted by
// NewLexer, NewParser, NewEvaluator, Run and NewSession, so a host can thread
// one configuration through the whole pipeline.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger injects a structured logger for debug tracing. There is no
// package-level logger; the default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func makeOptions(opts []Option) options {
	o := options{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
