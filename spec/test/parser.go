package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Verdict names accepted in the expectation part of a test case.
const (
	VerdictAmbiguous     = "ambiguous"
	VerdictUnambiguous   = "unambiguous"
	VerdictNotDerivable  = "not-derivable"
	VerdictInconclusive  = "inconclusive"
	VerdictEmptyLanguage = "empty-language"
)

var knownVerdicts = map[string]struct{}{
	VerdictAmbiguous:     {},
	VerdictUnambiguous:   {},
	VerdictNotDerivable:  {},
	VerdictInconclusive:  {},
	VerdictEmptyLanguage: {},
}

// Expectation is the third part of a test case, e.g. `ambiguous 2`.
type Expectation struct {
	Verdict string

	// Count is meaningful only when HasCount is true.
	Count    int
	HasCount bool
}

func (e *Expectation) String() string {
	if e.HasCount {
		return fmt.Sprintf("%v %v", e.Verdict, e.Count)
	}
	return e.Verdict
}

// Match reports whether an actual verdict and count satisfy the expectation.
func (e *Expectation) Match(verdict string, count int) bool {
	if verdict != e.Verdict {
		return false
	}
	if e.HasCount && count != e.Count {
		return false
	}
	return true
}

type TestCase struct {
	Description string
	Input       string
	Expected    *Expectation
}

// ParseTestCase reads a test case consisting of three parts separated by `---` lines:
// a description, a target string, and an expectation.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	exp, err := parseExpectation(string(parts[2].buf))
	if err != nil {
		return nil, fmt.Errorf("line %v: %w", parts[0].lineCount+parts[1].lineCount+3, err)
	}

	return &TestCase{
		Description: strings.TrimSpace(string(parts[0].buf)),
		Input:       strings.TrimSpace(string(parts[1].buf)),
		Expected:    exp,
	}, nil
}

func parseExpectation(src string) (*Expectation, error) {
	fields := strings.Fields(src)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, fmt.Errorf("an expectation must be a verdict optionally followed by a count: %q", strings.TrimSpace(src))
	}
	verdict := strings.ToLower(fields[0])
	if _, ok := knownVerdicts[verdict]; !ok {
		return nil, fmt.Errorf("unknown verdict: %v", fields[0])
	}
	exp := &Expectation{
		Verdict: verdict,
	}
	if len(fields) == 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("a count must be a non-negative integer: %v", fields[1])
		}
		exp.Count = n
		exp.HasCount = true
	}
	return exp, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
