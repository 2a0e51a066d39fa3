package derivation

import (
	"strings"
	"testing"

	"github.com/nihei9/ambig/grammar"
	"github.com/nihei9/ambig/spec"
	"github.com/stretchr/testify/require"
)

func buildTestGrammar(t *testing.T, src string, notation spec.Notation) *grammar.Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src), spec.WithNotation(notation))
	require.NoError(t, err)
	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	require.NoError(t, err)
	g.Freeze()
	return g
}

func testSymbol(t *testing.T, g *grammar.Grammar, text string) grammar.SymbolID {
	t.Helper()

	sym, ok := g.Lookup(text)
	if !ok {
		t.Fatalf("symbol was not found: %v", text)
	}
	return sym
}

func testInput(g *grammar.Grammar, text string, notation spec.Notation) []grammar.SymbolID {
	texts := spec.SplitInput(text, notation)
	input := make([]grammar.SymbolID, len(texts))
	for i, text := range texts {
		sym, ok := g.Lookup(text)
		if !ok {
			sym = grammar.SymbolIDNil
		}
		input[i] = sym
	}
	return input
}

func testStart(t *testing.T, g *grammar.Grammar) grammar.SymbolID {
	t.Helper()

	start, ok := g.Start()
	require.True(t, ok)
	return start
}
