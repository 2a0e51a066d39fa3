package grammar

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	verr "github.com/nihei9/ambig/error"
	"github.com/nihei9/ambig/spec"
)

// Registration decides how the builder treats a right-hand-side symbol that never receives a rule.
type Registration string

const (
	// RegistrationPermissive registers every unseen symbol silently. A symbol without rules is a terminal.
	RegistrationPermissive = Registration("permissive")

	// RegistrationStrict rejects a symbol that looks like a nonterminal (its name begins with an upper-case
	// letter) but never receives a rule. This catches a typo that would otherwise become a new terminal.
	RegistrationStrict = Registration("strict")
)

func RegistrationFor(strict bool) Registration {
	if strict {
		return RegistrationStrict
	}
	return RegistrationPermissive
}

type GrammarBuilder struct {
	AST          *spec.RootNode
	Registration Registration

	diags verr.SpecErrors
	errs  verr.SpecErrors
}

// Build registers the rules of the AST in source order. Malformed lines of the AST and empty alternatives
// are skipped and kept as diagnostics. In strict mode, diagnostics and undefined symbols make Build fail.
func (b *GrammarBuilder) Build() (*Grammar, error) {
	b.diags = append(b.diags, b.AST.Errors...)

	g := NewGrammar()
	type occurrence struct {
		text string
		pos  spec.Position
	}
	var rhsOccurrences []occurrence
	for _, rule := range b.AST.Rules {
		lhs, err := g.RegisterOrGet(rule.LHS)
		if err != nil {
			return nil, err
		}
		for _, altNode := range rule.Alternatives {
			if len(altNode.Symbols) == 0 {
				b.diags = append(b.diags, &verr.SpecError{
					Cause:  ErrEmptyAlternative,
					Detail: rule.LHS,
					Row:    altNode.Pos.Row,
					Col:    altNode.Pos.Col,
				})
				continue
			}

			syms := make([]SymbolID, len(altNode.Symbols))
			for i, text := range altNode.Symbols {
				sym, err := g.RegisterOrGet(text)
				if err != nil {
					return nil, err
				}
				syms[i] = sym
				rhsOccurrences = append(rhsOccurrences, occurrence{
					text: text,
					pos:  altNode.Pos,
				})
			}
			_, err := g.AddAlternative(lhs, syms)
			if err != nil {
				return nil, fmt.Errorf("cannot add an alternative of %v: %w", rule.LHS, err)
			}
		}
	}

	if _, ok := g.Start(); !ok {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: ErrNoRule,
		})
		return nil, append(b.errs, b.diags...)
	}

	if b.Registration != RegistrationStrict {
		return g, nil
	}

	reported := map[string]struct{}{}
	for _, occ := range rhsOccurrences {
		if _, ok := reported[occ.text]; ok {
			continue
		}
		sym, _ := g.Lookup(occ.text)
		if g.IsNonTerminal(sym) || !looksLikeNonTerminal(occ.text) {
			continue
		}
		reported[occ.text] = struct{}{}
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  ErrUndefinedSymbol,
			Detail: occ.text,
			Row:    occ.pos.Row,
			Col:    occ.pos.Col,
		})
	}
	if len(b.errs) > 0 || len(b.diags) > 0 {
		return nil, append(b.errs, b.diags...)
	}

	return g, nil
}

// Diagnostics returns the problems Build skipped over.
func (b *GrammarBuilder) Diagnostics() verr.SpecErrors {
	return b.diags
}

func looksLikeNonTerminal(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return unicode.IsUpper(r)
}
