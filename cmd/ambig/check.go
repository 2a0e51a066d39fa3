package main

import (
	"os"

	"github.com/nihei9/ambig/ambiguity"
	"github.com/nihei9/ambig/spec"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkFlags = struct {
	start       *string
	trace       *bool
	derivations *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check <grammar file path> <string>",
		Short: "Count the derivations of a string and decide whether the grammar is ambiguous for it",
		Example: `  ambig check expr.txt "id + id * id"
  ambig check --notation compact --trace g.txt aab`,
		Args: cobra.ExactArgs(2),
		RunE: runCheck,
	}
	checkFlags.start = cmd.Flags().StringP("start", "s", "", "start symbol (default: LHS of the first rule)")
	checkFlags.trace = cmd.Flags().Bool("trace", false, "print the rule applications of every derivation")
	checkFlags.derivations = cmd.Flags().Bool("derivations", false, "print the sentential forms of every derivation")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, diags, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	printDiagnostics(os.Stderr, diags)

	start, err := ambiguity.StartSymbol(g, *checkFlags.start)
	if err != nil {
		return err
	}
	n, err := notation()
	if err != nil {
		return err
	}
	opts, err := checkOptions(newLogger())
	if err != nil {
		return err
	}
	if *checkFlags.trace {
		opts = append(opts, ambiguity.Trace())
	}
	if *checkFlags.derivations {
		opts = append(opts, ambiguity.Track())
	}

	r, err := ambiguity.Check(g, start, spec.SplitInput(args[1], n), opts...)
	if err != nil {
		return err
	}

	err = r.WriteSummary(os.Stdout)
	if err != nil {
		return err
	}
	if *checkFlags.trace {
		err = r.WriteTraces(os.Stdout, n.Separator())
		if err != nil {
			return err
		}
	}
	if *checkFlags.derivations {
		err = r.WriteDerivations(os.Stdout, viper.GetInt("indent"))
		if err != nil {
			return err
		}
	}
	return nil
}
