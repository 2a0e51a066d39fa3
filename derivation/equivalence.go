package derivation

import "fmt"

// DefaultEquivalenceDepthLimit bounds the length of the derivations the checker compares.
const DefaultEquivalenceDepthLimit = 1 << 16

type equivalenceConfig struct {
	depthLimit int
}

type EquivalenceOption func(c *equivalenceConfig)

// EquivalenceDepthLimit sets the longest derivation the checker accepts. A non-positive value means
// the default.
func EquivalenceDepthLimit(limit int) EquivalenceOption {
	return func(c *equivalenceConfig) {
		if limit > 0 {
			c.depthLimit = limit
		}
	}
}

// Equivalent reports whether the derivations ending at x and y have the same shape. Both derivations
// must have the same number of steps. Walking from the roots in lockstep, every tracked symbol must be
// equal in both derivations; a tracked symbol that one derivation rewrites must be rewritten by the other
// at the same step with an alternative of the same length, and then each symbol of the alternative is
// tracked. A symbol left untouched is followed to its new position.
func Equivalent(a *Arena, x, y FormID, opts ...EquivalenceOption) (bool, error) {
	config := &equivalenceConfig{
		depthLimit: DefaultEquivalenceDepthLimit,
	}
	for _, opt := range opts {
		opt(config)
	}

	cx, err := rootFirstChain(a, x)
	if err != nil {
		return false, err
	}
	cy, err := rootFirstChain(a, y)
	if err != nil {
		return false, err
	}
	if len(cx) > config.depthLimit || len(cy) > config.depthLimit {
		return false, fmt.Errorf("%w: a derivation has more than %v steps", ErrRecursionLimit, config.depthLimit)
	}
	if len(cx) != len(cy) {
		return false, nil
	}
	if len(cx[0].Symbols) != len(cy[0].Symbols) {
		return false, nil
	}

	e := &equivalence{
		x: cx,
		y: cy,
	}
	for pos := range cx[0].Symbols {
		if !e.equivalent(0, pos, pos) {
			return false, nil
		}
	}
	return true, nil
}

type equivalence struct {
	x []*Form
	y []*Form
}

// equivalent compares the symbol at px of step x[i] with the one at py of step y[i] and follows both
// to the leaves.
func (e *equivalence) equivalent(i, px, py int) bool {
	fx := e.x[i]
	fy := e.y[i]
	if fx.Symbols[px] != fy.Symbols[py] {
		return false
	}
	if i == len(e.x)-1 {
		return true
	}

	nx := e.x[i+1]
	ny := e.y[i+1]
	kx := len(nx.Symbols) - len(fx.Symbols) + 1
	ky := len(ny.Symbols) - len(fy.Symbols) + 1
	expandedX := px == nx.SymbolIndex
	expandedY := py == ny.SymbolIndex
	if expandedX != expandedY {
		return false
	}
	if expandedX {
		if kx != ky {
			return false
		}
		for off := 0; off < kx; off++ {
			if !e.equivalent(i+1, px+off, py+off) {
				return false
			}
		}
		return true
	}
	return e.equivalent(i+1, carriedPosition(px, nx.SymbolIndex, kx), carriedPosition(py, ny.SymbolIndex, ky))
}

// carriedPosition maps the position of a symbol that a step doesn't rewrite to its position after the
// step. The step rewrites the symbol at expanded with k symbols.
func carriedPosition(pos, expanded, k int) int {
	if pos < expanded {
		return pos
	}
	return pos + k - 1
}

func rootFirstChain(a *Arena, id FormID) ([]*Form, error) {
	chain, err := a.Chain(id)
	if err != nil {
		return nil, err
	}
	forms := make([]*Form, len(chain))
	for i, fid := range chain {
		f, _ := a.Form(fid)
		forms[len(chain)-1-i] = f
	}
	return forms, nil
}

// DistinctShapes returns the number of equivalence classes among the derivations ending at leaves.
func DistinctShapes(a *Arena, leaves []FormID, opts ...EquivalenceOption) (int, error) {
	var reps []FormID
	for _, leaf := range leaves {
		matched := false
		for _, rep := range reps {
			ok, err := Equivalent(a, rep, leaf, opts...)
			if err != nil {
				return 0, err
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			reps = append(reps, leaf)
		}
	}
	return len(reps), nil
}
