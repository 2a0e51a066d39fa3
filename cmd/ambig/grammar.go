package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	verr "github.com/nihei9/ambig/error"
	"github.com/nihei9/ambig/grammar"
	"github.com/nihei9/ambig/spec"
	"github.com/spf13/viper"
)

// readGrammar builds a grammar from a rule file. The returned diagnostics describe the lines and
// alternatives the builder skipped.
func readGrammar(path string) (*grammar.Grammar, verr.SpecErrors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	g, diags, err := buildGrammar(f)
	if err != nil {
		var specErrs verr.SpecErrors
		if errors.As(err, &specErrs) {
			specErrs.SetSource(path, path)
		}
		return nil, nil, err
	}
	diags.SetSource(path, path)
	return g, diags, nil
}

func buildGrammar(src io.Reader) (*grammar.Grammar, verr.SpecErrors, error) {
	n, err := notation()
	if err != nil {
		return nil, nil, err
	}
	ast, err := spec.Parse(src, spec.WithNotation(n))
	if err != nil {
		return nil, nil, err
	}
	b := grammar.GrammarBuilder{
		AST:          ast,
		Registration: grammar.RegistrationFor(viper.GetBool("strict")),
	}
	g, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return g, b.Diagnostics(), nil
}

func printDiagnostics(w io.Writer, diags verr.SpecErrors) {
	for _, d := range diags {
		fmt.Fprintf(w, "warning: skipped: %v\n", d)
	}
}
