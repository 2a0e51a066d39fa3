package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/ambig/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarBuilder_Build(t *testing.T) {
	src := `
# arithmetic expressions
E -> E + E | E * E | ( E ) | id
`
	ast, err := spec.Parse(strings.NewReader(src))
	require.NoError(t, err)
	b := GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, b.Diagnostics())

	genSym := newTestSymbolGenerator(t, g)
	start, ok := g.Start()
	require.True(t, ok)
	assert.Equal(t, genSym("E"), start)

	alts := g.AlternativesOf(start)
	require.Len(t, alts, 4)
	assert.Equal(t, []SymbolID{genSym("E"), genSym("+"), genSym("E")}, alts[0].Symbols())
	assert.Equal(t, []SymbolID{genSym("id")}, alts[3].Symbols())
	assert.Equal(t, []SymbolID{genSym("E")}, g.NonTerminals())
}

func TestGrammarBuilder_Build_Diagnostics(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		strict   bool
		diags    []error
		errCause error
	}{
		{
			caption: "an empty alternative is skipped in permissive mode",
			src:     `S -> a | | b`,
			diags:   []error{ErrEmptyAlternative},
		},
		{
			caption: "a malformed line is skipped in permissive mode",
			src: `S -> a
S a
`,
			diags: []error{spec.ErrMalformedRule},
		},
		{
			caption:  "an empty alternative is fatal in strict mode",
			src:      `S -> a | | b`,
			strict:   true,
			errCause: ErrEmptyAlternative,
		},
		{
			caption:  "a symbol that looks like a nonterminal needs a rule in strict mode",
			src:      `S -> A b`,
			strict:   true,
			errCause: ErrUndefinedSymbol,
		},
		{
			caption: "an undefined upper-case symbol is a terminal in permissive mode",
			src:     `S -> A b`,
		},
		{
			caption:  "a grammar without rules is rejected",
			src:      "# nothing\n",
			errCause: ErrNoRule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := spec.Parse(strings.NewReader(tt.src))
			require.NoError(t, err)
			b := GrammarBuilder{
				AST:          ast,
				Registration: RegistrationFor(tt.strict),
			}
			g, err := b.Build()
			if tt.errCause != nil {
				assert.Nil(t, g)
				assert.ErrorIs(t, err, tt.errCause)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, g)
			diags := b.Diagnostics()
			require.Len(t, diags, len(tt.diags))
			for i, cause := range tt.diags {
				assert.ErrorIs(t, diags[i], cause)
			}
		})
	}
}
