package derivation

import (
	"testing"

	"github.com/nihei9/ambig/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountDerivations(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		notation spec.Notation
		input    string
		count    int
	}{
		{
			caption:  "a right-recursive grammar derives a string in one way",
			src:      `S->aS|a`,
			notation: spec.NotationCompact,
			input:    "aaa",
			count:    1,
		},
		{
			caption: "two identical alternatives derive a string in two ways",
			src: `
S -> A | A
A -> a
`,
			input: "a",
			count: 2,
		},
		{
			caption:  "a balanced grammar derives a string in one way",
			src:      `S->aSb|ab`,
			notation: spec.NotationCompact,
			input:    "aabb",
			count:    1,
		},
		{
			caption: "an operator without precedence derives a chain of two operators in two ways",
			src:     `E -> E + E | id`,
			input:   "id + id + id",
			count:   2,
		},
		{
			caption: "an operator without precedence derives a single operand in one way",
			src:     `E -> E + E | id`,
			input:   "id",
			count:   1,
		},
		{
			caption:  "concatenation derives four symbols in Catalan(3) ways",
			src:      `S->SS|a`,
			notation: spec.NotationCompact,
			input:    "aaaa",
			count:    5,
		},
		{
			caption: "an incomplete string has no derivation",
			src:     `E -> E + E | id`,
			input:   "id +",
			count:   0,
		},
		{
			caption:  "a string having an unknown symbol has no derivation",
			src:      `S->aS|a`,
			notation: spec.NotationCompact,
			input:    "ab",
			count:    0,
		},
		{
			caption:  "an empty string has no derivation",
			src:      `S->aS|a`,
			notation: spec.NotationCompact,
			input:    "",
			count:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			notation := tt.notation
			if notation == "" {
				notation = spec.NotationSpaced
			}
			g := buildTestGrammar(t, tt.src, notation)
			res, err := CountDerivations(g, testStart(t, g), testInput(g, tt.input, notation))
			require.NoError(t, err)
			assert.Equal(t, tt.count, res.Count)
			assert.False(t, res.LimitHit)
			assert.Empty(t, res.Derivations, "derivations are collected only with traces")
		})
	}
}

func TestCountDerivations_Limits(t *testing.T) {
	g := buildTestGrammar(t, `
S -> A | a
A -> S
`, spec.NotationSpaced)
	res, err := CountDerivations(g, testStart(t, g), testInput(g, "a", spec.NotationSpaced), MaxDepth(4))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count, "S->a and S->A->S->a fit in four expansions")
	assert.True(t, res.LimitHit)
	assert.False(t, res.BudgetExhausted)

	g = buildTestGrammar(t, `
S -> A | A
A -> a
`, spec.NotationSpaced)
	res, err = CountDerivations(g, testStart(t, g), testInput(g, "a", spec.NotationSpaced), MaxExpansions(1))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, 1, res.Expansions)
	assert.True(t, res.LimitHit)
	assert.True(t, res.BudgetExhausted)
}

func TestCountDerivations_Traces(t *testing.T) {
	g := buildTestGrammar(t, `S->aS|a`, spec.NotationCompact)
	res, err := CountDerivations(g, testStart(t, g), testInput(g, "aa", spec.NotationCompact), WithTraces())
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Len(t, res.Derivations, 1)

	d := res.Derivations[0]
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "S->aS -> S->a", d.Trace(g, ""))
	assert.Equal(t, FormIDNil, d.Leaf)
}

func TestCountDerivations_Arena(t *testing.T) {
	g := buildTestGrammar(t, `S->aS|a`, spec.NotationCompact)
	a := NewArena(g)
	res, err := CountDerivations(g, testStart(t, g), testInput(g, "aa", spec.NotationCompact), WithArena(a))
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Len(t, res.Derivations, 1)
	assert.Equal(t, 3, a.Len(), "forms of failed branches are discarded")

	leaf := res.Derivations[0].Leaf
	f, ok := a.Form(leaf)
	require.True(t, ok)
	assert.Equal(t, "a a", a.FormatForm(leaf, " "))
	assert.Equal(t, 2, f.Depth)
}

func TestCountDerivations_UnknownStart(t *testing.T) {
	g := buildTestGrammar(t, `S->a`, spec.NotationCompact)
	_, err := CountDerivations(g, 100, nil)
	assert.Error(t, err)

	other := buildTestGrammar(t, `S->a`, spec.NotationCompact)
	_, err = CountDerivations(g, testStart(t, g), nil, WithArena(NewArena(other)))
	assert.Error(t, err)
}
