package grammar

import "fmt"

// VisitedScope decides how long a symbol stays in the cycle guard of the parsability filter.
type VisitedScope string

const (
	// VisitedPathScoped keeps a symbol in the guard only while the symbol is on the current search path,
	// so a symbol reached first through a cycle can still be proven parsable through another path. The
	// answer equals the productivity fixed point, which is how it is computed.
	VisitedPathScoped = VisitedScope("path")

	// VisitedShared keeps every visited symbol in the guard until the query ends. This under-approximates
	// parsability: `S -> A A` fails because the second A was already visited.
	VisitedShared = VisitedScope("shared")
)

func ParseVisitedScope(s string) (VisitedScope, error) {
	switch VisitedScope(s) {
	case VisitedPathScoped, "":
		return VisitedPathScoped, nil
	case VisitedShared:
		return VisitedShared, nil
	}
	return "", fmt.Errorf("unknown parsability scope: %v (want %v or %v)", s, VisitedPathScoped, VisitedShared)
}

const DefaultParsabilityDepthLimit = 10000

type parsabilityConfig struct {
	scope      VisitedScope
	depthLimit int
}

type ParsabilityOption func(c *parsabilityConfig)

func WithVisitedScope(scope VisitedScope) ParsabilityOption {
	return func(c *parsabilityConfig) {
		c.scope = scope
	}
}

// ParsabilityDepthLimit bounds the nesting of the search under the shared guard. A non-positive limit
// means the default.
func ParsabilityDepthLimit(limit int) ParsabilityOption {
	return func(c *parsabilityConfig) {
		if limit > 0 {
			c.depthLimit = limit
		}
	}
}

type parsabilityContext struct {
	g       *Grammar
	config  *parsabilityConfig
	visited map[SymbolID]struct{}
}

// IsParsable reports whether sym can be rewritten into a finite string of terminals. A terminal is always
// parsable. Under the shared guard, each call starts with an empty visited set and the depth limit applies.
func (g *Grammar) IsParsable(sym SymbolID, opts ...ParsabilityOption) (bool, error) {
	config := &parsabilityConfig{
		scope:      VisitedPathScoped,
		depthLimit: DefaultParsabilityDepthLimit,
	}
	for _, opt := range opts {
		opt(config)
	}
	if !g.symbolTable.contains(sym) {
		return false, fmt.Errorf("%w: %v", ErrUnknownSymbol, sym)
	}

	if config.scope != VisitedShared {
		return g.Productive()[sym], nil
	}

	c := &parsabilityContext{
		g:       g,
		config:  config,
		visited: map[SymbolID]struct{}{},
	}
	return c.isParsable(sym, 0)
}

func (c *parsabilityContext) isParsable(sym SymbolID, depth int) (bool, error) {
	if depth > c.config.depthLimit {
		return false, fmt.Errorf("%w: parsability of %v nests deeper than %v", ErrRecursionLimit, c.g.Text(sym), c.config.depthLimit)
	}
	if _, ok := c.visited[sym]; ok {
		return false, nil
	}
	c.visited[sym] = struct{}{}

	if c.g.IsTerminal(sym) {
		return true, nil
	}

	for _, alt := range c.g.alts[sym] {
		viable := true
		for _, s := range alt.rhs {
			if c.g.IsTerminal(s) {
				continue
			}
			ok, err := c.isParsable(s, depth+1)
			if err != nil {
				return false, err
			}
			if !ok {
				viable = false
				break
			}
		}
		if viable {
			return true, nil
		}
	}
	return false, nil
}

// Productive returns the set of symbols that derive at least one terminal string. Unlike the shared
// guard of IsParsable, it is an exact least fixed point: a nonterminal joins the set once one of its alternatives consists
// only of productive symbols, and the iteration stops when no symbol joins.
func (g *Grammar) Productive() map[SymbolID]bool {
	productive := map[SymbolID]bool{}
	for _, sym := range g.Terminals() {
		productive[sym] = true
	}
	nonTerms := g.NonTerminals()
	for {
		more := false
		for _, nt := range nonTerms {
			if productive[nt] {
				continue
			}
			for _, alt := range g.alts[nt] {
				if allProductive(alt.rhs, productive) {
					productive[nt] = true
					more = true
					break
				}
			}
		}
		if !more {
			break
		}
	}
	return productive
}

// Unparsable returns the nonterminals that never derive a terminal string, in registration order.
func (g *Grammar) Unparsable() []SymbolID {
	productive := g.Productive()
	var syms []SymbolID
	for _, nt := range g.NonTerminals() {
		if !productive[nt] {
			syms = append(syms, nt)
		}
	}
	return syms
}

func allProductive(syms []SymbolID, productive map[SymbolID]bool) bool {
	for _, sym := range syms {
		if !productive[sym] {
			return false
		}
	}
	return true
}
