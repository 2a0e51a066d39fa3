package grammar

import (
	"fmt"
	"strings"
)

// Grammar is a symbol table plus an ordered list of alternatives per symbol. A symbol is a nonterminal
// iff it has at least one alternative, so the class of a symbol can change while the grammar is built.
// Once frozen, a grammar never changes.
type Grammar struct {
	symbolTable *symbolTable
	alts        [][]*Alternative
	id2Alt      map[AlternativeID]*Alternative
	duplicates  []*Alternative
	start       SymbolID
	frozen      bool
}

func NewGrammar() *Grammar {
	return &Grammar{
		symbolTable: newSymbolTable(),
		id2Alt:      map[AlternativeID]*Alternative{},
		start:       SymbolIDNil,
	}
}

// RegisterOrGet returns the symbol named text, registering it with an empty alternative list when the
// grammar has never seen the text. Repeated calls with the same text return the same ID.
func (g *Grammar) RegisterOrGet(text string) (SymbolID, error) {
	if text == "" {
		return SymbolIDNil, ErrEmptySymbolText
	}
	if sym, ok := g.symbolTable.toSymbol(text); ok {
		return sym, nil
	}
	if g.frozen {
		return SymbolIDNil, fmt.Errorf("%w: cannot register %v", ErrFrozen, text)
	}
	sym, _ := g.symbolTable.registerOrGet(text)
	g.alts = append(g.alts, nil)
	return sym, nil
}

// AddAlternative appends an alternative to the alternative list of lhs. The first LHS that receives an
// alternative becomes the start symbol.
func (g *Grammar) AddAlternative(lhs SymbolID, symbols []SymbolID) (*Alternative, error) {
	if g.frozen {
		return nil, ErrFrozen
	}
	if !g.symbolTable.contains(lhs) {
		return nil, fmt.Errorf("%w: LHS %v", ErrUnknownSymbol, lhs)
	}
	for _, sym := range symbols {
		if !g.symbolTable.contains(sym) {
			return nil, fmt.Errorf("%w: RHS symbol %v", ErrUnknownSymbol, sym)
		}
	}
	alt, err := newAlternative(lhs, symbols)
	if err != nil {
		return nil, err
	}

	alt.num = len(g.alts[lhs])
	g.alts[lhs] = append(g.alts[lhs], alt)
	if first, ok := g.id2Alt[alt.id]; ok && first.equals(alt) {
		g.duplicates = append(g.duplicates, alt)
	} else {
		g.id2Alt[alt.id] = alt
	}
	if g.start.IsNil() {
		g.start = lhs
	}

	return alt, nil
}

// AlternativesOf returns the alternatives of sym in registration order. The result is empty for a
// terminal and for an unknown ID.
func (g *Grammar) AlternativesOf(sym SymbolID) []*Alternative {
	if !g.symbolTable.contains(sym) {
		return nil
	}
	alts := make([]*Alternative, len(g.alts[sym]))
	copy(alts, g.alts[sym])
	return alts
}

// Alternative returns the num-th alternative of sym.
func (g *Grammar) Alternative(sym SymbolID, num int) (*Alternative, bool) {
	if !g.symbolTable.contains(sym) || num < 0 || num >= len(g.alts[sym]) {
		return nil, false
	}
	return g.alts[sym][num], true
}

func (g *Grammar) alternativeCount(sym SymbolID) int {
	if !g.symbolTable.contains(sym) {
		return 0
	}
	return len(g.alts[sym])
}

func (g *Grammar) IsNonTerminal(sym SymbolID) bool {
	return g.alternativeCount(sym) > 0
}

func (g *Grammar) IsTerminal(sym SymbolID) bool {
	return !g.IsNonTerminal(sym)
}

// Lookup returns the symbol named text without registering it.
func (g *Grammar) Lookup(text string) (SymbolID, bool) {
	return g.symbolTable.toSymbol(text)
}

// Text returns the name of sym, or the ID notation when the grammar doesn't know it.
func (g *Grammar) Text(sym SymbolID) string {
	text, ok := g.symbolTable.toText(sym)
	if !ok {
		return sym.String()
	}
	return text
}

func (g *Grammar) SymbolCount() int {
	return g.symbolTable.count()
}

// Symbols returns all the symbols in registration order.
func (g *Grammar) Symbols() []SymbolID {
	syms := make([]SymbolID, g.symbolTable.count())
	for i := range syms {
		syms[i] = SymbolID(i)
	}
	return syms
}

// NonTerminals returns the symbols having alternatives in registration order.
func (g *Grammar) NonTerminals() []SymbolID {
	var syms []SymbolID
	for _, sym := range g.Symbols() {
		if g.IsNonTerminal(sym) {
			syms = append(syms, sym)
		}
	}
	return syms
}

// Terminals returns the symbols having no alternative in registration order.
func (g *Grammar) Terminals() []SymbolID {
	var syms []SymbolID
	for _, sym := range g.Symbols() {
		if g.IsTerminal(sym) {
			syms = append(syms, sym)
		}
	}
	return syms
}

// Start returns the LHS of the first alternative added to the grammar.
func (g *Grammar) Start() (SymbolID, bool) {
	if g.start.IsNil() {
		return SymbolIDNil, false
	}
	return g.start, true
}

// Duplicates returns the alternatives whose LHS already had an alternative with the same symbols.
func (g *Grammar) Duplicates() []*Alternative {
	dups := make([]*Alternative, len(g.duplicates))
	copy(dups, g.duplicates)
	return dups
}

// Freeze makes the grammar immutable. Freezing a frozen grammar is a no-op.
func (g *Grammar) Freeze() {
	g.frozen = true
}

func (g *Grammar) Frozen() bool {
	return g.frozen
}

// FormatSymbols joins the names of syms with sep.
func (g *Grammar) FormatSymbols(syms []SymbolID, sep string) string {
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i] = g.Text(sym)
	}
	return strings.Join(texts, sep)
}

// FormatAlternative renders an alternative as `LHS->symbols`.
func (g *Grammar) FormatAlternative(alt *Alternative, sep string) string {
	return fmt.Sprintf("%v->%v", g.Text(alt.lhs), g.FormatSymbols(alt.rhs, sep))
}
