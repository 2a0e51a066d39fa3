package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/ambig/spec"
	"github.com/stretchr/testify/require"
)

type testSymbolGenerator func(text string) SymbolID

func newTestSymbolGenerator(t *testing.T, g *Grammar) testSymbolGenerator {
	return func(text string) SymbolID {
		t.Helper()

		sym, ok := g.Lookup(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

func buildTestGrammar(t *testing.T, src string, notation spec.Notation) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src), spec.WithNotation(notation))
	require.NoError(t, err)
	b := GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}
