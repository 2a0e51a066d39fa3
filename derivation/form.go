package derivation

import (
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/ambig/grammar"
)

// FormID is an index of a sentential form in an Arena.
type FormID int

const FormIDNil = FormID(-1)

func (id FormID) IsNil() bool {
	return id < 0
}

// DefaultIndent is the number of spaces put before every non-root line of a printed derivation.
const DefaultIndent = 4

// Form is one step of a derivation. The symbols of a child are those of its parent with the symbol at
// SymbolIndex replaced by the symbols of the alternative numbered AlternativeIndex. A root has no parent
// and both of its indices are -1. A form never changes after it is stored.
type Form struct {
	Symbols          []grammar.SymbolID
	Parent           FormID
	SymbolIndex      int
	AlternativeIndex int
	Depth            int
}

func (f *Form) IsRoot() bool {
	return f.Parent.IsNil()
}

// Arena stores sentential forms. Forms refer to their parents by index, so a whole derivation tree lives
// in one slice and a failed branch is discarded by truncating the slice.
type Arena struct {
	g     *grammar.Grammar
	forms []*Form
}

func NewArena(g *grammar.Grammar) *Arena {
	return &Arena{
		g: g,
	}
}

func (a *Arena) Grammar() *grammar.Grammar {
	return a.g
}

// Root stores a form without a parent.
func (a *Arena) Root(symbols ...grammar.SymbolID) FormID {
	syms := make([]grammar.SymbolID, len(symbols))
	copy(syms, symbols)
	return a.add(&Form{
		Symbols:          syms,
		Parent:           FormIDNil,
		SymbolIndex:      -1,
		AlternativeIndex: -1,
	})
}

// Expand stores the form obtained by rewriting the symbol at symbolIndex of parent with its
// alternativeIndex-th alternative.
func (a *Arena) Expand(parent FormID, symbolIndex, alternativeIndex int) (FormID, error) {
	p, ok := a.Form(parent)
	if !ok {
		return FormIDNil, fmt.Errorf("%w: %v", ErrInvalidForm, parent)
	}
	if symbolIndex < 0 || symbolIndex >= len(p.Symbols) {
		return FormIDNil, fmt.Errorf("%w: index %v is out of the form of length %v", ErrNotExpandable, symbolIndex, len(p.Symbols))
	}
	sym := p.Symbols[symbolIndex]
	if a.g.IsTerminal(sym) {
		return FormIDNil, fmt.Errorf("%w: %v is a terminal", ErrNotExpandable, a.g.Text(sym))
	}
	alt, ok := a.g.Alternative(sym, alternativeIndex)
	if !ok {
		return FormIDNil, fmt.Errorf("%w: %v has no alternative #%v", ErrNoSuchAlternative, a.g.Text(sym), alternativeIndex)
	}

	syms := make([]grammar.SymbolID, 0, len(p.Symbols)+alt.Len()-1)
	syms = append(syms, p.Symbols[:symbolIndex]...)
	syms = alt.AppendSymbols(syms)
	syms = append(syms, p.Symbols[symbolIndex+1:]...)
	return a.add(&Form{
		Symbols:          syms,
		Parent:           parent,
		SymbolIndex:      symbolIndex,
		AlternativeIndex: alternativeIndex,
		Depth:            p.Depth + 1,
	}), nil
}

func (a *Arena) add(f *Form) FormID {
	a.forms = append(a.forms, f)
	return FormID(len(a.forms) - 1)
}

// Form returns the stored form. Callers must not modify it.
func (a *Arena) Form(id FormID) (*Form, bool) {
	if id < 0 || int(id) >= len(a.forms) {
		return nil, false
	}
	return a.forms[id], true
}

func (a *Arena) Len() int {
	return len(a.forms)
}

// Truncate discards the forms stored at index n and after. IDs of the discarded forms become invalid.
func (a *Arena) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(a.forms) {
		return
	}
	for i := n; i < len(a.forms); i++ {
		a.forms[i] = nil
	}
	a.forms = a.forms[:n]
}

// Chain returns id and its ancestors, leaf first and root last.
func (a *Arena) Chain(id FormID) ([]FormID, error) {
	var chain []FormID
	for !id.IsNil() {
		f, ok := a.Form(id)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, id)
		}
		chain = append(chain, id)
		id = f.Parent
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, id)
	}
	return chain, nil
}

// SameSymbols reports whether two forms consist of the same symbols.
func (a *Arena) SameSymbols(x, y FormID) bool {
	fx, ok := a.Form(x)
	if !ok {
		return false
	}
	fy, ok := a.Form(y)
	if !ok {
		return false
	}
	return equalSymbols(fx.Symbols, fy.Symbols)
}

func equalSymbols(x, y []grammar.SymbolID) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// FormatForm joins the names of the symbols of a form with sep.
func (a *Arena) FormatForm(id FormID, sep string) string {
	f, ok := a.Form(id)
	if !ok {
		return ""
	}
	return a.g.FormatSymbols(f.Symbols, sep)
}

// PrintDerivation writes the forms from the root to id, one per line, as `<depth>: <symbols>`.
// Every line but the root's is indented by indent spaces.
func (a *Arena) PrintDerivation(w io.Writer, id FormID, indent int) error {
	chain, err := a.Chain(id)
	if err != nil {
		return err
	}
	if indent < 0 {
		indent = 0
	}
	pad := strings.Repeat(" ", indent)
	for i := len(chain) - 1; i >= 0; i-- {
		f := a.forms[chain[i]]
		if !f.IsRoot() {
			if _, err := io.WriteString(w, pad); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%v: %v\n", f.Depth, a.g.FormatSymbols(f.Symbols, " "))
		if err != nil {
			return err
		}
	}
	return nil
}
