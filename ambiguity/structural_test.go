package ambiguity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStructural(t *testing.T) {
	tests := []struct {
		caption   string
		src       string
		opts      []Option
		ambiguous bool
		kind      WitnessKind
	}{
		{
			caption: "identical top-level alternatives are ambiguous",
			src: `
S -> A | A
A -> a
`,
			ambiguous: true,
			kind:      WitnessIdenticalAlternatives,
		},
		{
			caption:   "different top-level alternatives are not ambiguous",
			src:       `S -> a S | a`,
			ambiguous: false,
		},
		{
			caption:   "a deeper ambiguity is out of reach of the top-level comparison",
			src:       `E -> E + E | id`,
			ambiguous: false,
		},
		{
			caption:   "a deeper ambiguity is found by exploring below the alternatives",
			src:       `E -> E + E | id`,
			opts:      []Option{StructuralDepth(3)},
			ambiguous: true,
			kind:      WitnessSharedForm,
		},
		{
			caption:   "exploring an unambiguous grammar finds nothing",
			src:       `S -> a S | a`,
			opts:      []Option{StructuralDepth(5)},
			ambiguous: false,
		},
		{
			caption: "a shared form containing an unproductive symbol is not a witness",
			src: `
S -> a B | a C | c
B -> D
C -> D
D -> D
`,
			opts:      []Option{StructuralDepth(3)},
			ambiguous: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, start := buildTestGrammar(t, tt.src)
			r, err := CheckStructural(g, start, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.ambiguous, r.Ambiguous())
			if !tt.ambiguous {
				return
			}
			require.NotEmpty(t, r.Witnesses)
			wit := r.Witnesses[0]
			assert.Equal(t, tt.kind, wit.Kind)
			assert.True(t, r.Arena.SameSymbols(wit.Forms[0], wit.Forms[1]))
			assert.NotEqual(t, wit.Forms[0], wit.Forms[1])
		})
	}
}

func TestCheckStructural_SharedForm(t *testing.T) {
	g, start := buildTestGrammar(t, `E -> E + E | id`)
	r, err := CheckStructural(g, start, StructuralDepth(3))
	require.NoError(t, err)
	require.Len(t, r.Witnesses, 1)

	wit := r.Witnesses[0]
	assert.Equal(t, [2]int{0, 0}, wit.Alternatives)
	assert.Equal(t, "id + E + E", r.Arena.FormatForm(wit.Forms[1], " "))

	var b strings.Builder
	require.NoError(t, r.WriteSummary(&b, " ", 4))
	assert.Equal(t, `Ambiguity detected!
id + E + E is reached by two leftmost derivations starting with E->E + E and E->E + E
0: E
    1: E + E
    2: E + E + E
    3: id + E + E
0: E
    1: E + E
    2: id + E
    3: id + E + E
`, b.String())
}

func TestCheckStructural_Limit(t *testing.T) {
	g, start := buildTestGrammar(t, `E -> E + E | id`)
	r, err := CheckStructural(g, start, StructuralDepth(10), MaxForms(5))
	require.NoError(t, err)
	assert.True(t, r.LimitHit)
	assert.LessOrEqual(t, r.Arena.Len(), 5)
}

func TestStructuralReport_WriteSummary(t *testing.T) {
	g, start := buildTestGrammar(t, `
S -> A | A
A -> a
`)
	r, err := CheckStructural(g, start)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.WriteSummary(&b, " ", 4))
	assert.Equal(t, `Ambiguity detected!
alternatives #1 (S->A) and #2 (S->A) derive the same structure
0: S
    1: A
0: S
    1: A
`, b.String())

	g, start = buildTestGrammar(t, `S -> a S | a`)
	r, err = CheckStructural(g, start)
	require.NoError(t, err)
	b.Reset()
	require.NoError(t, r.WriteSummary(&b, " ", 4))
	assert.Equal(t, "No ambiguity detected.\n", b.String())
}
