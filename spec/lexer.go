package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindSymbol  = tokenKind("symbol")
	tokenKindOr      = tokenKind("|")
	tokenKindEOF     = tokenKind("eof")
	tokenKindInvalid = tokenKind("invalid")
)

const (
	lexKindWhiteSpace = mlspec.LexKindName("white_space")
	lexKindOr         = mlspec.LexKindName("or")
	lexKindSymbol     = mlspec.LexKindName("symbol")
)

// rhsLexSpec describes the right-hand side of a rule. A rule line is split at its separator
// before lexing, so neither the separator nor a newline ever reaches the lexer.
var rhsLexSpec = &mlspec.LexSpec{
	Name: "rhs",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    lexKindWhiteSpace,
			Pattern: `[\u{0009}\u{000D}\u{0020}]+`,
		},
		{
			Kind:    lexKindOr,
			Pattern: `\|`,
		},
		{
			Kind:    lexKindSymbol,
			Pattern: `[^\u{0009}\u{000A}\u{000D}\u{0020}\u{007C}]+`,
		},
	},
}

var (
	compileOnce sync.Once
	compiledRHS *mlspec.CompiledLexSpec
	compileErr  error
)

func compiledRHSLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileOnce.Do(func() {
		cspec, err, cErrs := mlcompiler.Compile(rhsLexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				compileErr = fmt.Errorf("cannot compile the rule lexer: %v", b.String())
				return
			}
			compileErr = err
			return
		}
		compiledRHS = cspec
	})
	return compiledRHS, compileErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type token struct {
	kind tokenKind
	text string
	col  int
}

func newSymbolToken(text string, col int) *token {
	return &token{
		kind: tokenKindSymbol,
		text: text,
		col:  col,
	}
}

func newOrToken(col int) *token {
	return &token{
		kind: tokenKindOr,
		col:  col,
	}
}

func newEOFToken() *token {
	return &token{
		kind: tokenKindEOF,
	}
}

func newInvalidToken(text string, col int) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		col:  col,
	}
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compiledRHSLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

// next returns the next token skipping white spaces. Columns are 0-origin and counted in code points.
func (l *lexer) next() (*token, error) {
	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return newEOFToken(), nil
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), tok.Col), nil
		}

		switch l.s.KindNames[tok.KindID] {
		case lexKindWhiteSpace:
			continue
		case lexKindOr:
			return newOrToken(tok.Col), nil
		case lexKindSymbol:
			return newSymbolToken(string(tok.Lexeme), tok.Col), nil
		default:
			return newInvalidToken(string(tok.Lexeme), tok.Col), nil
		}
	}
}
