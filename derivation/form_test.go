package derivation

import (
	"strings"
	"testing"

	"github.com/nihei9/ambig/grammar"
	"github.com/nihei9/ambig/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_Expand(t *testing.T) {
	g := buildTestGrammar(t, `
S -> a S b | c
`, spec.NotationSpaced)
	s := testSymbol(t, g, "S")
	a := NewArena(g)

	root := a.Root(s)
	child, err := a.Expand(root, 0, 0)
	require.NoError(t, err)
	leaf, err := a.Expand(child, 1, 1)
	require.NoError(t, err)

	f, ok := a.Form(leaf)
	require.True(t, ok)
	assert.Equal(t, []grammar.SymbolID{
		testSymbol(t, g, "a"),
		testSymbol(t, g, "c"),
		testSymbol(t, g, "b"),
	}, f.Symbols)
	assert.Equal(t, child, f.Parent)
	assert.Equal(t, 1, f.SymbolIndex)
	assert.Equal(t, 1, f.AlternativeIndex)
	assert.Equal(t, 2, f.Depth)

	rf, ok := a.Form(root)
	require.True(t, ok)
	assert.True(t, rf.IsRoot())
	assert.Equal(t, []grammar.SymbolID{s}, rf.Symbols, "expanding must not modify the parent")

	chain, err := a.Chain(leaf)
	require.NoError(t, err)
	assert.Equal(t, []FormID{leaf, child, root}, chain)
}

func TestArena_Expand_Errors(t *testing.T) {
	g := buildTestGrammar(t, `S -> a S | a`, spec.NotationSpaced)
	a := NewArena(g)
	root := a.Root(testSymbol(t, g, "S"))
	child, err := a.Expand(root, 0, 0)
	require.NoError(t, err)

	_, err = a.Expand(FormID(100), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidForm)
	_, err = a.Expand(child, 0, 0)
	assert.ErrorIs(t, err, ErrNotExpandable, "a terminal cannot be expanded")
	_, err = a.Expand(child, 2, 0)
	assert.ErrorIs(t, err, ErrNotExpandable)
	_, err = a.Expand(child, 1, 2)
	assert.ErrorIs(t, err, ErrNoSuchAlternative)

	_, err = a.Chain(FormIDNil)
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestArena_Truncate(t *testing.T) {
	g := buildTestGrammar(t, `S -> a S | a`, spec.NotationSpaced)
	a := NewArena(g)
	root := a.Root(testSymbol(t, g, "S"))
	mark := a.Len()
	child, err := a.Expand(root, 0, 0)
	require.NoError(t, err)
	_, err = a.Expand(child, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())

	a.Truncate(mark)
	assert.Equal(t, 1, a.Len())
	_, ok := a.Form(child)
	assert.False(t, ok)
	_, ok = a.Form(root)
	assert.True(t, ok)
}

func TestArena_PrintDerivation(t *testing.T) {
	g := buildTestGrammar(t, `S->aS|a`, spec.NotationCompact)
	a := NewArena(g)
	root := a.Root(testSymbol(t, g, "S"))
	child, err := a.Expand(root, 0, 0)
	require.NoError(t, err)
	leaf, err := a.Expand(child, 1, 1)
	require.NoError(t, err)

	var b strings.Builder
	err = a.PrintDerivation(&b, leaf, DefaultIndent)
	require.NoError(t, err)
	assert.Equal(t, "0: S\n    1: a S\n    2: a a\n", b.String())

	b.Reset()
	err = a.PrintDerivation(&b, root, 2)
	require.NoError(t, err)
	assert.Equal(t, "0: S\n", b.String())

	assert.True(t, a.SameSymbols(leaf, leaf))
	assert.False(t, a.SameSymbols(root, leaf))
}
