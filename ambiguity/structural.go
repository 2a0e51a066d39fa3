package ambiguity

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nihei9/ambig/derivation"
	"github.com/nihei9/ambig/grammar"
)

type WitnessKind string

const (
	// WitnessIdenticalAlternatives means two top-level alternatives yield derivations of the same shape.
	WitnessIdenticalAlternatives = WitnessKind("identical-alternatives")

	// WitnessSharedForm means two different leftmost derivations reach the same sentential form, and every
	// symbol of the form derives a terminal string.
	WitnessSharedForm = WitnessKind("shared-form")
)

type Witness struct {
	Kind WitnessKind

	// Alternatives holds the numbers of the top-level alternatives the two derivations start with.
	// They are equal when both derivations start with the same alternative.
	Alternatives [2]int

	// Forms holds the last forms of the two derivations.
	Forms [2]derivation.FormID
}

type StructuralReport struct {
	Grammar   *grammar.Grammar
	Start     grammar.SymbolID
	Arena     *derivation.Arena
	Witnesses []*Witness

	// LimitHit is true when the exploration stopped because of MaxForms.
	LimitHit bool
}

func (r *StructuralReport) Ambiguous() bool {
	return len(r.Witnesses) > 0
}

// CheckStructural compares every pair of alternatives of start. Two alternatives whose one-step
// derivations are equivalent make the grammar ambiguous. With StructuralDepth greater than 1, it also
// explores leftmost derivations below the alternatives and reports a sentential form reached twice.
func CheckStructural(g *grammar.Grammar, start grammar.SymbolID, opts ...Option) (*StructuralReport, error) {
	c := newConfig(opts)
	g.Freeze()

	ok, err := g.IsParsable(start, grammar.WithVisitedScope(c.scope))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v derives no terminal string", ErrEmptyLanguage, g.Text(start))
	}

	a := derivation.NewArena(g)
	r := &StructuralReport{
		Grammar: g,
		Start:   start,
		Arena:   a,
	}

	root := a.Root(start)
	alts := g.AlternativesOf(start)
	tops := make([]derivation.FormID, len(alts))
	for i := range alts {
		tops[i], err = a.Expand(root, 0, i)
		if err != nil {
			return nil, err
		}
	}
	for i := 0; i < len(tops); i++ {
		for j := i + 1; j < len(tops); j++ {
			ok, err := derivation.Equivalent(a, tops[i], tops[j])
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			c.logger.Debug("identical alternatives", "first", i, "second", j)
			r.Witnesses = append(r.Witnesses, &Witness{
				Kind:         WitnessIdenticalAlternatives,
				Alternatives: [2]int{i, j},
				Forms:        [2]derivation.FormID{tops[i], tops[j]},
			})
		}
	}

	if c.structuralDepth > 1 {
		err := explore(r, tops, c)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

type exploredForm struct {
	id  derivation.FormID
	top int
}

// explore walks the leftmost derivations below the top-level forms breadth first. Each stored form is
// a distinct derivation, so a form whose symbols were already seen witnesses two derivations of them.
func explore(r *StructuralReport, tops []derivation.FormID, c *config) error {
	g := r.Grammar
	a := r.Arena
	productive := g.Productive()

	seen := map[string]exploredForm{}
	var queue []exploredForm
	for i, id := range tops {
		f, _ := a.Form(id)
		key := formKey(f.Symbols)
		if _, ok := seen[key]; ok {
			continue
		}
		e := exploredForm{
			id:  id,
			top: i,
		}
		seen[key] = e
		queue = append(queue, e)
	}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		f, _ := a.Form(e.id)
		if f.Depth >= c.structuralDepth || len(f.Symbols) > c.maxFormLength {
			continue
		}
		idx := leftmostNonTerminal(g, f.Symbols)
		if idx < 0 {
			continue
		}
		for k := range g.AlternativesOf(f.Symbols[idx]) {
			if a.Len() >= c.maxForms {
				c.logger.Debug("exploration stopped", "reason", "max forms", "forms", a.Len())
				r.LimitHit = true
				return nil
			}
			child, err := a.Expand(e.id, idx, k)
			if err != nil {
				return err
			}
			cf, _ := a.Form(child)
			key := formKey(cf.Symbols)
			prev, ok := seen[key]
			if !ok {
				next := exploredForm{
					id:  child,
					top: e.top,
				}
				seen[key] = next
				queue = append(queue, next)
				continue
			}
			if !allProductive(cf.Symbols, productive) {
				continue
			}
			c.logger.Debug("shared sentential form", "form", g.FormatSymbols(cf.Symbols, " "))
			r.Witnesses = append(r.Witnesses, &Witness{
				Kind:         WitnessSharedForm,
				Alternatives: [2]int{prev.top, e.top},
				Forms:        [2]derivation.FormID{prev.id, child},
			})
		}
	}
	return nil
}

func leftmostNonTerminal(g *grammar.Grammar, syms []grammar.SymbolID) int {
	for i, sym := range syms {
		if g.IsNonTerminal(sym) {
			return i
		}
	}
	return -1
}

func allProductive(syms []grammar.SymbolID, productive map[grammar.SymbolID]bool) bool {
	for _, sym := range syms {
		if !productive[sym] {
			return false
		}
	}
	return true
}

func formKey(syms []grammar.SymbolID) string {
	var b strings.Builder
	for i, sym := range syms {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(sym.Int()))
	}
	return b.String()
}

// WriteSummary writes the result of the structural check. Every witness is followed by its two
// derivations.
func (r *StructuralReport) WriteSummary(w io.Writer, sep string, indent int) error {
	if !r.Ambiguous() {
		msg := "No ambiguity detected."
		if r.LimitHit {
			msg = "No ambiguity detected before the exploration stopped at a limit."
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	_, err := fmt.Fprintln(w, "Ambiguity detected!")
	if err != nil {
		return err
	}
	alts := r.Grammar.AlternativesOf(r.Start)
	for _, wit := range r.Witnesses {
		first := r.Grammar.FormatAlternative(alts[wit.Alternatives[0]], sep)
		second := r.Grammar.FormatAlternative(alts[wit.Alternatives[1]], sep)
		switch wit.Kind {
		case WitnessIdenticalAlternatives:
			_, err = fmt.Fprintf(w, "alternatives #%v (%v) and #%v (%v) derive the same structure\n", wit.Alternatives[0]+1, first, wit.Alternatives[1]+1, second)
		case WitnessSharedForm:
			_, err = fmt.Fprintf(w, "%v is reached by two leftmost derivations starting with %v and %v\n", r.Arena.FormatForm(wit.Forms[1], " "), first, second)
		}
		if err != nil {
			return err
		}
		for _, id := range wit.Forms {
			err := r.Arena.PrintDerivation(w, id, indent)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
