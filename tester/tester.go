package tester

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/ambig/ambiguity"
	"github.com/nihei9/ambig/grammar"
	"github.com/nihei9/ambig/spec"
	tspec "github.com/nihei9/ambig/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error

	// Verdict and Count are the actual outcome. Verdict is empty when the check failed with an error.
	Verdict string
	Count   int
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent = "    "

		msgLines := strings.Split(r.Error.Error(), "\n")
		return fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent, strings.Join(msgLines, "\n"+indent))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

// ListTestCases reads a test case file, or every file under a directory recursively. A file that cannot
// be read or parsed is returned with its error.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	Grammar  *grammar.Grammar
	Start    grammar.SymbolID
	Notation spec.Notation
	Options  []ambiguity.Option
	Cases    []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, t.runTest(c))
	}
	return rs
}

func (t *Tester) runTest(c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	verdict, count, err := t.check(c.TestCase.Input)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}
	r := &TestResult{
		TestCasePath: c.FilePath,
		Verdict:      verdict,
		Count:        count,
	}
	if !c.TestCase.Expected.Match(verdict, count) {
		actual := &tspec.Expectation{
			Verdict:  verdict,
			Count:    count,
			HasCount: true,
		}
		r.Error = fmt.Errorf("verdict mismatch:\nexpected: %v\nactual:   %v", c.TestCase.Expected, actual)
	}
	return r
}

func (t *Tester) check(input string) (string, int, error) {
	r, err := ambiguity.Check(t.Grammar, t.Start, spec.SplitInput(input, t.Notation), t.Options...)
	if err != nil {
		if errors.Is(err, ambiguity.ErrEmptyLanguage) {
			return tspec.VerdictEmptyLanguage, 0, nil
		}
		return "", 0, err
	}
	return r.Verdict.String(), r.Count, nil
}
