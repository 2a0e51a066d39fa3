package grammar

import (
	"fmt"
	"testing"

	"github.com/nihei9/ambig/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_IsParsable(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		notation spec.Notation
		sym      string
		scope    VisitedScope
		parsable bool
	}{
		{
			caption:  "a terminal is always parsable",
			src:      `S->a`,
			notation: spec.NotationCompact,
			sym:      "a",
			parsable: true,
		},
		{
			caption:  "a right-recursive symbol having a base case is parsable",
			src:      `S->aS|a`,
			notation: spec.NotationCompact,
			sym:      "S",
			parsable: true,
		},
		{
			caption:  "a symbol that only derives itself is not parsable",
			src:      `S->S`,
			notation: spec.NotationCompact,
			sym:      "S",
			parsable: false,
		},
		{
			caption: "mutually recursive symbols without a base case are not parsable",
			src: `
A -> B
B -> A
`,
			sym:      "A",
			parsable: false,
		},
		{
			caption: "a symbol reachable through a cycle is parsable when another path reaches terminals",
			src: `
S -> A
A -> S b | c
`,
			sym:      "S",
			parsable: true,
		},
		{
			caption: "a repeated symbol is parsable under the path-scoped guard",
			src: `
S -> A A
A -> a
`,
			sym:      "S",
			scope:    VisitedPathScoped,
			parsable: true,
		},
		{
			caption: "a repeated symbol is rejected under the shared guard",
			src: `
S -> A A
A -> a
`,
			sym:      "S",
			scope:    VisitedShared,
			parsable: false,
		},
		{
			caption: "the shared guard still accepts distinct symbols",
			src: `
S -> A B
A -> a
B -> b
`,
			sym:      "S",
			scope:    VisitedShared,
			parsable: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			notation := tt.notation
			if notation == "" {
				notation = spec.NotationSpaced
			}
			g := buildTestGrammar(t, tt.src, notation)
			genSym := newTestSymbolGenerator(t, g)

			var opts []ParsabilityOption
			if tt.scope != "" {
				opts = append(opts, WithVisitedScope(tt.scope))
			}
			ok, err := g.IsParsable(genSym(tt.sym), opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.parsable, ok)
		})
	}
}

func TestGrammar_IsParsable_IsIdempotent(t *testing.T) {
	g := buildTestGrammar(t, `S->aS|a`, spec.NotationCompact)
	s := newTestSymbolGenerator(t, g)("S")
	for i := 0; i < 3; i++ {
		ok, err := g.IsParsable(s)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestGrammar_IsParsable_Errors(t *testing.T) {
	g := buildTestGrammar(t, `S->a`, spec.NotationCompact)

	_, err := g.IsParsable(SymbolID(100))
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	deep := buildTestGrammar(t, `
S -> A
A -> B
B -> C
C -> c
`, spec.NotationSpaced)
	_, err = deep.IsParsable(newTestSymbolGenerator(t, deep)("S"), WithVisitedScope(VisitedShared), ParsabilityDepthLimit(1))
	assert.ErrorIs(t, err, ErrRecursionLimit)
}

// A_i -> A_{i+1} x | A_{i+1} y and A_n -> A_n reach the unproductive A_n along 2^n paths. Answering
// from the productivity fixed point keeps the query linear in the size of the grammar.
func TestGrammar_IsParsable_LongUnproductiveChain(t *testing.T) {
	const n = 40

	g := NewGrammar()
	x, err := g.RegisterOrGet("x")
	require.NoError(t, err)
	y, err := g.RegisterOrGet("y")
	require.NoError(t, err)
	syms := make([]SymbolID, n+1)
	for i := range syms {
		syms[i], err = g.RegisterOrGet(fmt.Sprintf("A%v", i))
		require.NoError(t, err)
	}
	for i := 0; i < n; i++ {
		_, err = g.AddAlternative(syms[i], []SymbolID{syms[i+1], x})
		require.NoError(t, err)
		_, err = g.AddAlternative(syms[i], []SymbolID{syms[i+1], y})
		require.NoError(t, err)
	}
	_, err = g.AddAlternative(syms[n], []SymbolID{syms[n]})
	require.NoError(t, err)

	for _, scope := range []VisitedScope{VisitedPathScoped, VisitedShared} {
		ok, err := g.IsParsable(syms[0], WithVisitedScope(scope))
		require.NoError(t, err)
		assert.False(t, ok, "scope: %v", scope)
	}

	// Giving the last symbol a base case makes the whole chain parsable.
	_, err = g.AddAlternative(syms[n], []SymbolID{x})
	require.NoError(t, err)
	ok, err := g.IsParsable(syms[0])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGrammar_Unparsable(t *testing.T) {
	g := buildTestGrammar(t, `
S -> A | B
A -> a
B -> B b
C -> C
`, spec.NotationSpaced)
	genSym := newTestSymbolGenerator(t, g)

	assert.Equal(t, []SymbolID{genSym("B"), genSym("C")}, g.Unparsable())

	productive := g.Productive()
	assert.True(t, productive[genSym("S")])
	assert.True(t, productive[genSym("A")])
	assert.True(t, productive[genSym("a")])
	assert.False(t, productive[genSym("B")])
}
