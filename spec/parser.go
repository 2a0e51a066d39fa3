package spec

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	verr "github.com/nihei9/ambig/error"
)

// EndSentinel terminates rule input when it appears alone on a line.
const EndSentinel = "end"

// separators are tried in this order; when two of them start at the same column, the earlier one wins.
var separators = []string{"::=", "->", "→", "="}

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type RootNode struct {
	Rules []*RuleNode

	// Errors holds the diagnostics of the lines the parser skipped.
	Errors verr.SpecErrors
}

type RuleNode struct {
	LHS          string
	Alternatives []*AlternativeNode
	Pos          Position
}

// AlternativeNode is one alternative of a rule. Symbols is empty when the source has an empty alternative,
// such as `S -> a | | b`; rejecting it is left to the grammar builder.
type AlternativeNode struct {
	Symbols []string
	Pos     Position
}

type ParserOption func(p *parser)

// WithNotation sets the notation of right-hand sides. The default is NotationSpaced.
func WithNotation(n Notation) ParserOption {
	return func(p *parser) {
		p.notation = n
	}
}

// Parse reads rules line by line until EOF or the end sentinel. A malformed line doesn't stop parsing;
// it is recorded in RootNode.Errors and skipped.
func Parse(src io.Reader, opts ...ParserOption) (*RootNode, error) {
	p := &parser{
		notation: NotationSpaced,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p.parse(src)
}

type parser struct {
	notation Notation
	errs     verr.SpecErrors
}

func (p *parser) parse(src io.Reader) (*RootNode, error) {
	root := &RootNode{}
	s := bufio.NewScanner(src)
	row := 0
	for s.Scan() {
		row++
		line := s.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if trimmed == EndSentinel {
			break
		}

		rule, err := p.parseRule(line, row)
		if err != nil {
			return nil, err
		}
		if rule == nil {
			continue
		}
		root.Rules = append(root.Rules, rule)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	root.Errors = p.errs
	return root, nil
}

// ParseRule parses a single rule line. It returns nil and a diagnostic when the line is malformed.
func ParseRule(line string, opts ...ParserOption) (*RuleNode, *verr.SpecError, error) {
	p := &parser{
		notation: NotationSpaced,
	}
	for _, opt := range opts {
		opt(p)
	}
	rule, err := p.parseRule(line, 1)
	if err != nil {
		return nil, nil, err
	}
	if len(p.errs) > 0 {
		return nil, p.errs[0], nil
	}
	return rule, nil, nil
}

func (p *parser) parseRule(line string, row int) (*RuleNode, error) {
	sepIdx, sepLen := findSeparator(line)
	if sepIdx < 0 {
		p.malformed(row, 0, detailNoSeparator)
		return nil, nil
	}

	lhsFields := strings.Fields(line[:sepIdx])
	switch {
	case len(lhsFields) == 0:
		p.malformed(row, 0, detailNoLHS)
		return nil, nil
	case len(lhsFields) > 1:
		p.malformed(row, 0, detailMultipleLHSs)
		return nil, nil
	}
	lhs := lhsFields[0]
	if p.notation == NotationCompact && utf8.RuneCountInString(lhs) != 1 {
		p.malformed(row, 0, detailMultipleLHSs)
		return nil, nil
	}

	rhsStart := sepIdx + sepLen
	rhsCol := utf8.RuneCountInString(line[:rhsStart]) + 1
	alts, err := p.parseRHS(line[rhsStart:], row, rhsCol)
	if err != nil {
		return nil, err
	}
	if alts == nil {
		return nil, nil
	}

	return &RuleNode{
		LHS:          lhs,
		Alternatives: alts,
		Pos:          newPosition(row, utf8.RuneCountInString(line[:strings.Index(line, lhs)])+1),
	}, nil
}

func (p *parser) parseRHS(rhs string, row, colOffset int) ([]*AlternativeNode, error) {
	lex, err := newLexer(strings.NewReader(rhs))
	if err != nil {
		return nil, err
	}

	alt := &AlternativeNode{
		Pos: newPosition(row, colOffset),
	}
	alts := []*AlternativeNode{alt}
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenKindEOF:
			return alts, nil
		case tokenKindInvalid:
			p.errs = append(p.errs, &verr.SpecError{
				Cause:  ErrMalformedRule,
				Detail: synErrInvalidToken.Error() + ": " + tok.text,
				Row:    row,
				Col:    colOffset + tok.col,
			})
			return nil, nil
		case tokenKindOr:
			alt = &AlternativeNode{
				Pos: newPosition(row, colOffset+tok.col+1),
			}
			alts = append(alts, alt)
		case tokenKindSymbol:
			if len(alt.Symbols) == 0 {
				alt.Pos = newPosition(row, colOffset+tok.col)
			}
			alt.Symbols = append(alt.Symbols, p.notation.split(tok.text)...)
		}
	}
}

func (p *parser) malformed(row, col int, detail string) {
	p.errs = append(p.errs, &verr.SpecError{
		Cause:  ErrMalformedRule,
		Detail: detail,
		Row:    row,
		Col:    col,
	})
}

func findSeparator(line string) (int, int) {
	idx := -1
	length := 0
	for _, sep := range separators {
		i := strings.Index(line, sep)
		if i < 0 {
			continue
		}
		if idx < 0 || i < idx {
			idx = i
			length = len(sep)
		}
	}
	return idx, length
}
