package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	verr "github.com/nihei9/ambig/error"
	"github.com/nihei9/ambig/grammar"
	"github.com/nihei9/ambig/spec"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print a grammar in a readable format",
		Example: `  ambig show expr.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	g, diags, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	n, err := notation()
	if err != nil {
		return err
	}
	return writeGrammar(os.Stdout, g, diags, n)
}

func writeGrammar(w io.Writer, g *grammar.Grammar, diags verr.SpecErrors, n spec.Notation) error {
	fmt.Fprintf(w, "# Grammar Rules\n\n")
	table := tablewriter.NewWriter(w)
	table.Header([]string{"LHS", "#", "Alternative"})
	for _, nt := range g.NonTerminals() {
		for _, alt := range g.AlternativesOf(nt) {
			table.Append([]string{g.Text(nt), strconv.Itoa(alt.Num() + 1), g.FormatSymbols(alt.Symbols(), n.Separator())})
		}
	}
	err := table.Render()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n# FIRST Sets\n\n")
	fst := g.FirstSet()
	firstTable := tablewriter.NewWriter(w)
	firstTable.Header([]string{"Nonterminal", "FIRST"})
	for _, nt := range g.NonTerminals() {
		firstTable.Append([]string{g.Text(nt), g.FormatSymbols(fst.Find(nt), " ")})
	}
	err = firstTable.Render()
	if err != nil {
		return err
	}

	if start, ok := g.Start(); ok {
		fmt.Fprintf(w, "\nStart symbol: %v\n", g.Text(start))
	}
	fmt.Fprintf(w, "Terminals: %v\n", g.FormatSymbols(g.Terminals(), " "))

	if unparsable := g.Unparsable(); len(unparsable) > 0 {
		fmt.Fprintf(w, "\n# Unparsable Nonterminals\n\n")
		for _, sym := range unparsable {
			fmt.Fprintf(w, "%v\n", g.Text(sym))
		}
	}
	if dups := g.Duplicates(); len(dups) > 0 {
		fmt.Fprintf(w, "\n# Duplicate Alternatives\n\n")
		for _, alt := range dups {
			fmt.Fprintf(w, "%v (#%v)\n", g.FormatAlternative(alt, n.Separator()), alt.Num()+1)
		}
	}
	if len(diags) > 0 {
		fmt.Fprintf(w, "\n# Skipped\n\n")
		for _, d := range diags {
			fmt.Fprintf(w, "%v\n", d)
		}
	}
	return nil
}
