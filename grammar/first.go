package grammar

import "sort"

type firstEntry struct {
	symbols map[SymbolID]struct{}
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[SymbolID]struct{}{},
	}
}

func (e *firstEntry) add(sym SymbolID) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) merge(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

// FirstSet holds, for each nonterminal, the terminals a string derived from it can begin with. No
// alternative is empty, so the first symbol of an alternative alone decides its contribution.
type FirstSet struct {
	g   *Grammar
	set map[SymbolID]*firstEntry
}

// FirstSet computes the FIRST sets of the current alternatives by iterating until no set grows.
func (g *Grammar) FirstSet() *FirstSet {
	fst := &FirstSet{
		g:   g,
		set: map[SymbolID]*firstEntry{},
	}
	nonTerms := g.NonTerminals()
	for _, nt := range nonTerms {
		fst.set[nt] = newFirstEntry()
	}
	for {
		more := false
		for _, nt := range nonTerms {
			acc := fst.set[nt]
			for _, alt := range g.alts[nt] {
				head := alt.rhs[0]
				var changed bool
				if e, ok := fst.set[head]; ok {
					changed = acc.merge(e)
				} else {
					changed = acc.add(head)
				}
				if changed {
					more = true
				}
			}
		}
		if !more {
			break
		}
	}
	return fst
}

// CanStartWith reports whether a string derived from sym can begin with terminal. A terminal begins
// only with itself.
func (fst *FirstSet) CanStartWith(sym, terminal SymbolID) bool {
	e, ok := fst.set[sym]
	if !ok {
		return sym == terminal
	}
	_, ok = e.symbols[terminal]
	return ok
}

// Find returns the FIRST set of sym in ID order.
func (fst *FirstSet) Find(sym SymbolID) []SymbolID {
	e, ok := fst.set[sym]
	if !ok {
		return []SymbolID{sym}
	}
	syms := make([]SymbolID, 0, len(e.symbols))
	for s := range e.symbols {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
