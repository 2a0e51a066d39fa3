package derivation

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nihei9/ambig/grammar"
)

// DefaultMaxDepth bounds the number of expansions along one branch of the search.
const DefaultMaxDepth = 1024

type counterConfig struct {
	maxDepth      int
	maxExpansions int
	traces        bool
	arena         *Arena
	logger        *slog.Logger
}

type CounterOption func(c *counterConfig)

// MaxDepth sets the number of expansions one branch may apply. A non-positive value means the default.
func MaxDepth(depth int) CounterOption {
	return func(c *counterConfig) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// MaxExpansions sets the number of expansions the whole search may apply. 0 means no limit.
func MaxExpansions(n int) CounterOption {
	return func(c *counterConfig) {
		if n >= 0 {
			c.maxExpansions = n
		}
	}
}

// WithTraces makes the counter keep the rule applications of every successful derivation.
func WithTraces() CounterOption {
	return func(c *counterConfig) {
		c.traces = true
	}
}

// WithArena records the search in an arena. The arena keeps the forms of successful derivations only,
// and each Derivation in the result points at its last form. WithArena implies WithTraces.
func WithArena(a *Arena) CounterOption {
	return func(c *counterConfig) {
		c.arena = a
		c.traces = true
	}
}

func WithLogger(logger *slog.Logger) CounterOption {
	return func(c *counterConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Application is one rewrite step of a leftmost derivation.
type Application struct {
	LHS         grammar.SymbolID
	Alternative *grammar.Alternative
}

type Derivation struct {
	Applications []Application

	// Leaf is the last form of the derivation. It is FormIDNil unless the search was recorded in an arena.
	Leaf FormID
}

type Result struct {
	// Count is the number of distinct leftmost derivations found.
	Count int

	// LimitHit is true when a branch was abandoned because of MaxDepth or MaxExpansions. Count is then
	// a lower bound.
	LimitHit bool

	// BudgetExhausted is true when the search stopped because of MaxExpansions.
	BudgetExhausted bool

	Expansions  int
	Derivations []*Derivation
}

// CountDerivations counts the leftmost derivations of input from start. Every alternative of the leftmost
// nonterminal is tried in registration order and every branch is followed independently, so the count
// is the number of distinct derivations. A symbol of input that the grammar doesn't know should be
// passed as grammar.SymbolIDNil; it matches nothing.
func CountDerivations(g *grammar.Grammar, start grammar.SymbolID, input []grammar.SymbolID, opts ...CounterOption) (*Result, error) {
	config := &counterConfig{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(config)
	}
	if start.IsNil() || start.Int() >= g.SymbolCount() {
		return nil, fmt.Errorf("%w: start symbol %v", grammar.ErrUnknownSymbol, start)
	}
	if config.arena != nil && config.arena.Grammar() != g {
		return nil, fmt.Errorf("the arena belongs to another grammar")
	}

	c := &counter{
		g:      g,
		first:  g.FirstSet(),
		input:  input,
		config: config,
		result: &Result{},
	}
	root := FormIDNil
	if config.arena != nil {
		root = config.arena.Root(start)
	}
	config.logger.Debug("counting derivations", "start", g.Text(start), "input_length", len(input))
	n, err := c.count([]grammar.SymbolID{start}, 0, 0, root)
	if err != nil {
		return nil, err
	}
	c.result.Count = n
	config.logger.Debug("counting finished", "count", n, "expansions", c.result.Expansions, "limit_hit", c.result.LimitHit)
	return c.result, nil
}

type counter struct {
	g      *grammar.Grammar
	first  *grammar.FirstSet
	input  []grammar.SymbolID
	config *counterConfig
	apps   []Application
	result *Result
}

// count follows one branch. form holds the symbols not yet matched and pos is the number of matched input
// symbols. When an arena is in use, the form stored at node is input[:pos] followed by form, so the
// leftmost nonterminal sits at index pos.
func (c *counter) count(form []grammar.SymbolID, pos, depth int, node FormID) (int, error) {
	for len(form) > 0 && c.g.IsTerminal(form[0]) {
		if pos >= len(c.input) || form[0] != c.input[pos] {
			return 0, nil
		}
		form = form[1:]
		pos++
	}
	if len(form) == 0 {
		if pos != len(c.input) {
			return 0, nil
		}
		c.found(node)
		return 1, nil
	}

	// Every symbol derives at least one terminal because no alternative is empty.
	if len(form) > len(c.input)-pos {
		return 0, nil
	}
	// The leftmost nonterminal must be able to begin with the next input symbol.
	if !c.first.CanStartWith(form[0], c.input[pos]) {
		return 0, nil
	}
	if depth >= c.config.maxDepth {
		if !c.result.LimitHit {
			c.config.logger.Debug("branch abandoned", "reason", "max depth", "depth", depth)
		}
		c.result.LimitHit = true
		return 0, nil
	}

	lhs := form[0]
	n := 0
	for i, alt := range c.g.AlternativesOf(lhs) {
		head, _ := alt.Symbol(0)
		if !c.first.CanStartWith(head, c.input[pos]) {
			continue
		}
		if c.config.maxExpansions > 0 && c.result.Expansions >= c.config.maxExpansions {
			if !c.result.BudgetExhausted {
				c.config.logger.Debug("search stopped", "reason", "max expansions", "expansions", c.result.Expansions)
			}
			c.result.LimitHit = true
			c.result.BudgetExhausted = true
			return n, nil
		}
		c.result.Expansions++

		next := make([]grammar.SymbolID, 0, alt.Len()+len(form)-1)
		next = alt.AppendSymbols(next)
		next = append(next, form[1:]...)

		child := FormIDNil
		mark := 0
		if c.config.arena != nil {
			mark = c.config.arena.Len()
			var err error
			child, err = c.config.arena.Expand(node, pos, i)
			if err != nil {
				return 0, err
			}
		}

		if c.config.traces {
			c.apps = append(c.apps, Application{
				LHS:         lhs,
				Alternative: alt,
			})
		}
		found, err := c.count(next, pos, depth+1, child)
		if err != nil {
			return 0, err
		}
		if c.config.traces {
			c.apps = c.apps[:len(c.apps)-1]
		}
		if found == 0 && c.config.arena != nil {
			c.config.arena.Truncate(mark)
		}
		n += found
	}
	return n, nil
}

func (c *counter) found(leaf FormID) {
	c.config.logger.Debug("derivation found", "steps", len(c.apps))
	if !c.config.traces {
		return
	}
	apps := make([]Application, len(c.apps))
	copy(apps, c.apps)
	c.result.Derivations = append(c.result.Derivations, &Derivation{
		Applications: apps,
		Leaf:         leaf,
	})
}
