package derivation

import (
	"strings"

	"github.com/nihei9/ambig/grammar"
)

// Trace renders the rule applications as `LHS->alternative -> LHS->alternative ...`. sep separates the
// symbols of each alternative.
func (d *Derivation) Trace(g *grammar.Grammar, sep string) string {
	steps := make([]string, len(d.Applications))
	for i, app := range d.Applications {
		steps[i] = g.FormatAlternative(app.Alternative, sep)
	}
	return strings.Join(steps, " -> ")
}

// Len returns the number of rule applications.
func (d *Derivation) Len() int {
	return len(d.Applications)
}
