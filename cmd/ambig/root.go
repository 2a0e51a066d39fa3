package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nihei9/ambig/ambiguity"
	"github.com/nihei9/ambig/derivation"
	"github.com/nihei9/ambig/grammar"
	"github.com/nihei9/ambig/spec"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "ambig",
	Short: "Detect ambiguity of a context-free grammar",
	Long: `ambig provides the following features:
- Counts the leftmost derivations of a string and reports whether the grammar is ambiguous for it.
- Compares the top-level alternatives of a grammar and finds structurally identical derivations.
- Runs test cases describing the expected verdict of strings.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var configFile string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML, TOML, or JSON)")
	rootCmd.PersistentFlags().String("notation", string(spec.NotationSpaced), "notation of rules and strings: spaced or compact")
	rootCmd.PersistentFlags().Bool("strict", false, "reject undefined nonterminals and malformed rules")
	rootCmd.PersistentFlags().Int("max-depth", derivation.DefaultMaxDepth, "maximum number of expansions along one derivation")
	rootCmd.PersistentFlags().Int("max-expansions", 0, "maximum number of expansions of a whole check (0 means no limit)")
	rootCmd.PersistentFlags().String("parsability", string(grammar.VisitedPathScoped), "cycle guard of the parsability filter: path or shared")
	rootCmd.PersistentFlags().Int("indent", derivation.DefaultIndent, "indentation of printed derivations")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("notation", rootCmd.PersistentFlags().Lookup("notation"))
	_ = viper.BindPFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))
	_ = viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	_ = viper.BindPFlag("max_expansions", rootCmd.PersistentFlags().Lookup("max-expansions"))
	_ = viper.BindPFlag("parsability", rootCmd.PersistentFlags().Lookup("parsability"))
	_ = viper.BindPFlag("indent", rootCmd.PersistentFlags().Lookup("indent"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("AMBIG")
	viper.AutomaticEnv()

	if configFile == "" {
		return
	}
	viper.SetConfigFile(configFile)
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read the config file %v: %v\n", configFile, err)
		os.Exit(1)
	}
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func notation() (spec.Notation, error) {
	return spec.ParseNotation(viper.GetString("notation"))
}

// checkOptions builds the options shared by every kind of check from the configuration.
func checkOptions(logger *slog.Logger) ([]ambiguity.Option, error) {
	scope, err := grammar.ParseVisitedScope(viper.GetString("parsability"))
	if err != nil {
		return nil, err
	}
	return []ambiguity.Option{
		ambiguity.MaxDepth(viper.GetInt("max_depth")),
		ambiguity.MaxExpansions(viper.GetInt("max_expansions")),
		ambiguity.Parsability(scope),
		ambiguity.Logger(logger),
	}, nil
}
