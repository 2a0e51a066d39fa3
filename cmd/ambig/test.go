package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/ambig/ambiguity"
	"github.com/nihei9/ambig/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	start *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test the verdicts of strings",
		Example: `  ambig test expr.txt test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.start = cmd.Flags().StringP("start", "s", "", "start symbol (default: LHS of the first rule)")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	g, diags, err := readGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	printDiagnostics(os.Stderr, diags)

	start, err := ambiguity.StartSymbol(g, *testFlags.start)
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

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar:  g,
		Start:    start,
		Notation: n,
		Options:  opts,
		Cases:    cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
