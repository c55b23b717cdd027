// file:artkv/pkg/x_art/options.go
package x_art

import (
	"github.com/rs/zerolog"
)

//---------------------
// Tree Options
//---------------------

// Options configure a Tree.
type Options struct {
	// MaxNodes bounds the number of live nodes (inner and leaf). Zero means
	// unlimited.
	MaxNodes int
	// MaxKeyLen rejects longer keys with ErrInvalidKey. Zero means unlimited.
	MaxKeyLen int
	// Logger receives allocation refusals and lifecycle events.
	Logger zerolog.Logger
}

// Option applies configuration to Options.
type Option func(*Options)

func newOptions(opts ...Option) Options {
	opt := Options{
		Logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(&opt)
	}
	return opt
}

// WithMaxNodes sets the node budget.
func WithMaxNodes(n int) Option {
	return func(o *Options) { o.MaxNodes = n }
}

// WithMaxKeyLen sets the longest accepted key.
func WithMaxKeyLen(n int) Option {
	return func(o *Options) { o.MaxKeyLen = n }
}

// WithLogger routes tree events to l.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
