package ambiguity

import (
	"fmt"
	"io"

	"github.com/nihei9/ambig/derivation"
	"github.com/nihei9/ambig/grammar"
)

type Report struct {
	Grammar *grammar.Grammar
	Start   grammar.SymbolID
	Input   []string

	Count      int
	Verdict    Verdict
	LimitHit   bool
	Expansions int

	// Derivations is filled when the check ran with Trace or Track.
	Derivations []*derivation.Derivation

	// Arena holds the sentential forms of the derivations when the check ran with Track.
	Arena *derivation.Arena

	// Shapes is the number of structurally different derivations. It is computed only when the check ran
	// with Track and found two or more derivations.
	Shapes int
}

func (r *Report) Ambiguous() bool {
	return r.Verdict == VerdictAmbiguous
}

// WriteSummary writes the number of derivations and the verdict.
func (r *Report) WriteSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w, "The string can be parsed in %v way(s).\n", r.Count)
	if err != nil {
		return err
	}
	var msg string
	switch r.Verdict {
	case VerdictAmbiguous:
		msg = "The grammar is ambiguous."
	case VerdictUnambiguous:
		msg = "The grammar is not ambiguous."
	case VerdictNotDerivable:
		msg = fmt.Sprintf("The string cannot be derived from %v.", r.Grammar.Text(r.Start))
	case VerdictInconclusive:
		msg = "The search stopped at a limit before finding a second derivation. Ambiguity is undecided."
	}
	_, err = fmt.Fprintln(w, msg)
	if err != nil {
		return err
	}
	if r.Shapes > 0 {
		_, err = fmt.Fprintf(w, "Structurally different derivations: %v\n", r.Shapes)
	}
	return err
}

// WriteTraces writes the rule applications of every derivation, one derivation per line.
func (r *Report) WriteTraces(w io.Writer, sep string) error {
	for i, d := range r.Derivations {
		_, err := fmt.Fprintf(w, "#%v: %v\n", i+1, d.Trace(r.Grammar, sep))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteDerivations writes the sentential forms of every derivation. It writes nothing unless the check ran
// with Track.
func (r *Report) WriteDerivations(w io.Writer, indent int) error {
	if r.Arena == nil {
		return nil
	}
	for i, d := range r.Derivations {
		_, err := fmt.Fprintf(w, "#%v:\n", i+1)
		if err != nil {
			return err
		}
		err = r.Arena.PrintDerivation(w, d.Leaf, indent)
		if err != nil {
			return err
		}
	}
	return nil
}
