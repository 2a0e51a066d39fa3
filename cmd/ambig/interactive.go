package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/nihei9/ambig/ambiguity"
	"github.com/nihei9/ambig/spec"
	"github.com/spf13/cobra"
)

const exitCommand = "exit"

func init() {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Enter rules and strings interactively",
		Long: `interactive reads rules until a line 'end', then a start symbol, then strings to check
until a line 'exit'.`,
		Example: `  ambig interactive --notation compact`,
		Args:    cobra.NoArgs,
		RunE:    runInteractive,
	}
	rootCmd.AddCommand(cmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	n, err := notation()
	if err != nil {
		return err
	}
	opts, err := checkOptions(newLogger())
	if err != nil {
		return err
	}
	s := &session{
		in:       promptReader{},
		out:      os.Stdout,
		errOut:   os.Stderr,
		notation: n,
		opts:     opts,
	}
	return s.run()
}

// lineReader asks for one line. A line that validate rejects is asked for again.
type lineReader interface {
	ReadLine(label string, validate func(string) error) (string, error)
}

type promptReader struct{}

func (promptReader) ReadLine(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	return prompt.Run()
}

type session struct {
	in       lineReader
	out      io.Writer
	errOut   io.Writer
	notation spec.Notation
	opts     []ambiguity.Option
}

// run reads rules until the end sentinel, a start symbol, and then strings until the exit command.
// An interrupted or closed input ends the session without an error.
func (s *session) run() error {
	src, done, err := s.readRules()
	if err != nil || done {
		return err
	}

	g, diags, err := buildGrammar(strings.NewReader(src))
	if err != nil {
		return err
	}
	printDiagnostics(s.errOut, diags)
	err = writeGrammar(s.out, g, nil, s.notation)
	if err != nil {
		return err
	}

	name, err := s.in.ReadLine("Start symbol", func(name string) error {
		_, err := ambiguity.StartSymbol(g, strings.TrimSpace(name))
		return err
	})
	if err != nil {
		return promptError(err)
	}
	start, err := ambiguity.StartSymbol(g, strings.TrimSpace(name))
	if err != nil {
		return err
	}

	opts := append(append([]ambiguity.Option{}, s.opts...), ambiguity.Trace())
	for {
		text, err := s.in.ReadLine(fmt.Sprintf("String ('%v' to quit)", exitCommand), nil)
		if err != nil {
			return promptError(err)
		}
		if strings.TrimSpace(text) == exitCommand {
			return nil
		}

		r, err := ambiguity.Check(g, start, spec.SplitInput(text, s.notation), opts...)
		if err != nil {
			fmt.Fprintln(s.out, promptui.Styler(promptui.FGRed)(err.Error()))
			if errors.Is(err, ambiguity.ErrEmptyLanguage) {
				return err
			}
			continue
		}
		err = r.WriteTraces(s.out, s.notation.Separator())
		if err != nil {
			return err
		}
		var b strings.Builder
		err = r.WriteSummary(&b)
		if err != nil {
			return err
		}
		color := promptui.FGGreen
		if r.Ambiguous() {
			color = promptui.FGYellow
		}
		fmt.Fprint(s.out, promptui.Styler(color)(b.String()))
		fmt.Fprintln(s.out, promptui.Styler(promptui.FGMagenta)(strings.Repeat("-", 30)))
	}
}

// readRules collects rule lines until the end sentinel. done is true when the input ended first.
func (s *session) readRules() (src string, done bool, err error) {
	var b strings.Builder
	for {
		line, err := s.in.ReadLine(fmt.Sprintf("Rule ('%v' to finish)", spec.EndSentinel), func(line string) error {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || trimmed == spec.EndSentinel {
				return nil
			}
			_, diag, err := spec.ParseRule(line, spec.WithNotation(s.notation))
			if err != nil {
				return err
			}
			if diag != nil {
				return diag
			}
			return nil
		})
		if err != nil {
			return "", true, promptError(err)
		}
		if strings.TrimSpace(line) == spec.EndSentinel {
			return b.String(), false, nil
		}
		fmt.Fprintln(&b, line)
	}
}

// promptError treats an interrupted or closed prompt as a normal end of the session.
func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}
