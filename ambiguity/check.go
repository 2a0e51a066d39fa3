package ambiguity

import (
	"fmt"

	"github.com/nihei9/ambig/derivation"
	"github.com/nihei9/ambig/grammar"
)

type Verdict string

const (
	VerdictAmbiguous    = Verdict("ambiguous")
	VerdictUnambiguous  = Verdict("unambiguous")
	VerdictNotDerivable = Verdict("not-derivable")
	VerdictInconclusive = Verdict("inconclusive")
)

func (v Verdict) String() string {
	return string(v)
}

// StartSymbol resolves the name of a start symbol. An empty name means the LHS of the first rule.
func StartSymbol(g *grammar.Grammar, name string) (grammar.SymbolID, error) {
	if name == "" {
		start, ok := g.Start()
		if !ok {
			return grammar.SymbolIDNil, fmt.Errorf("%w: the grammar has no rule", ErrUnknownStart)
		}
		return start, nil
	}
	sym, ok := g.Lookup(name)
	if !ok || g.IsTerminal(sym) {
		return grammar.SymbolIDNil, fmt.Errorf("%w: %v", ErrUnknownStart, name)
	}
	return sym, nil
}

// Symbols maps the symbols of a target string to the symbols of a grammar. A symbol the grammar doesn't
// know becomes grammar.SymbolIDNil.
func Symbols(g *grammar.Grammar, input []string) []grammar.SymbolID {
	syms := make([]grammar.SymbolID, len(input))
	for i, text := range input {
		sym, ok := g.Lookup(text)
		if !ok {
			sym = grammar.SymbolIDNil
		}
		syms[i] = sym
	}
	return syms
}

// Check counts the derivations of input from start. The grammar is frozen first. When start cannot derive
// any terminal string, Check fails with ErrEmptyLanguage without counting.
func Check(g *grammar.Grammar, start grammar.SymbolID, input []string, opts ...Option) (*Report, error) {
	c := newConfig(opts)
	g.Freeze()

	ok, err := g.IsParsable(start, grammar.WithVisitedScope(c.scope))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v derives no terminal string", ErrEmptyLanguage, g.Text(start))
	}

	counterOpts := []derivation.CounterOption{
		derivation.MaxDepth(c.maxDepth),
		derivation.MaxExpansions(c.maxExpansions),
		derivation.WithLogger(c.logger),
	}
	if c.trace {
		counterOpts = append(counterOpts, derivation.WithTraces())
	}
	var arena *derivation.Arena
	if c.track {
		arena = derivation.NewArena(g)
		counterOpts = append(counterOpts, derivation.WithArena(arena))
	}

	c.logger.Debug("check started", "start", g.Text(start), "input", input)
	res, err := derivation.CountDerivations(g, start, Symbols(g, input), counterOpts...)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Grammar:     g,
		Start:       start,
		Input:       input,
		Count:       res.Count,
		LimitHit:    res.LimitHit,
		Expansions:  res.Expansions,
		Derivations: res.Derivations,
		Arena:       arena,
		Verdict:     decide(res),
	}
	if arena != nil && res.Count > 1 {
		leaves := make([]derivation.FormID, len(res.Derivations))
		for i, d := range res.Derivations {
			leaves[i] = d.Leaf
		}
		n, err := derivation.DistinctShapes(arena, leaves)
		if err != nil {
			return nil, err
		}
		r.Shapes = n
	}
	c.logger.Debug("check finished", "verdict", r.Verdict, "count", r.Count)
	return r, nil
}

// decide turns a count into a verdict. Two derivations prove ambiguity even when the search hit a limit;
// fewer than two prove nothing in that case.
func decide(res *derivation.Result) Verdict {
	switch {
	case res.Count >= 2:
		return VerdictAmbiguous
	case res.LimitHit:
		return VerdictInconclusive
	case res.Count == 1:
		return VerdictUnambiguous
	default:
		return VerdictNotDerivable
	}
}
