package main

import (
	"os"

	"github.com/nihei9/ambig/ambiguity"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var structuralFlags = struct {
	start *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "structural <grammar file path>",
		Short: "Compare the top-level alternatives of a grammar",
		Example: `  ambig structural expr.txt
  ambig structural --structural-depth 4 expr.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runStructural,
	}
	structuralFlags.start = cmd.Flags().StringP("start", "s", "", "start symbol (default: LHS of the first rule)")
	cmd.Flags().Int("structural-depth", ambiguity.DefaultStructuralDepth, "expansions explored below each top-level alternative")
	cmd.Flags().Int("max-forms", ambiguity.DefaultMaxForms, "maximum number of sentential forms the exploration stores")
	_ = viper.BindPFlag("structural_depth", cmd.Flags().Lookup("structural-depth"))
	_ = viper.BindPFlag("max_forms", cmd.Flags().Lookup("max-forms"))
	rootCmd.AddCommand(cmd)
}

func runStructural(cmd *cobra.Command, args []string) error {
	g, diags, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	printDiagnostics(os.Stderr, diags)

	start, err := ambiguity.StartSymbol(g, *structuralFlags.start)
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
	opts = append(opts,
		ambiguity.StructuralDepth(viper.GetInt("structural_depth")),
		ambiguity.MaxForms(viper.GetInt("max_forms")),
	)

	r, err := ambiguity.CheckStructural(g, start, opts...)
	if err != nil {
		return err
	}
	return r.WriteSummary(os.Stdout, n.Separator(), viper.GetInt("indent"))
}
