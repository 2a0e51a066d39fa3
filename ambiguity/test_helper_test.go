package ambiguity

import (
	"strings"
	"testing"

	"github.com/nihei9/ambig/grammar"
	"github.com/nihei9/ambig/spec"
	"github.com/stretchr/testify/require"
)

func buildTestGrammar(t *testing.T, src string) (*grammar.Grammar, grammar.SymbolID) {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	require.NoError(t, err)
	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	require.NoError(t, err)
	start, err := StartSymbol(g, "")
	require.NoError(t, err)
	return g, start
}
