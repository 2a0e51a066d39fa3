package ambiguity

import (
	"io"
	"log/slog"

	"github.com/nihei9/ambig/derivation"
	"github.com/nihei9/ambig/grammar"
)

const (
	DefaultStructuralDepth = 1
	DefaultMaxForms        = 10000
	DefaultMaxFormLength   = 16
)

type config struct {
	maxDepth        int
	maxExpansions   int
	trace           bool
	track           bool
	scope           grammar.VisitedScope
	structuralDepth int
	maxForms        int
	maxFormLength   int
	logger          *slog.Logger
}

func newConfig(opts []Option) *config {
	c := &config{
		maxDepth:        derivation.DefaultMaxDepth,
		scope:           grammar.VisitedPathScoped,
		structuralDepth: DefaultStructuralDepth,
		maxForms:        DefaultMaxForms,
		maxFormLength:   DefaultMaxFormLength,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(c *config)

// MaxDepth bounds the expansions along one branch of the derivation search.
func MaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// MaxExpansions bounds the expansions of a whole check. 0 means no limit.
func MaxExpansions(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxExpansions = n
		}
	}
}

// Trace keeps the rule applications of every derivation found.
func Trace() Option {
	return func(c *config) {
		c.trace = true
	}
}

// Track records the sentential forms of every derivation found, so that they can be printed and compared.
func Track() Option {
	return func(c *config) {
		c.track = true
	}
}

func Parsability(scope grammar.VisitedScope) Option {
	return func(c *config) {
		c.scope = scope
	}
}

// StructuralDepth sets how many expansions the structural check explores below each top-level
// alternative. 1 compares the top-level alternatives only.
func StructuralDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.structuralDepth = depth
		}
	}
}

// MaxForms bounds the number of sentential forms the structural check stores.
func MaxForms(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxForms = n
		}
	}
}

// MaxFormLength bounds the length of a sentential form the structural check explores further.
func MaxFormLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxFormLength = n
		}
	}
}

func Logger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
