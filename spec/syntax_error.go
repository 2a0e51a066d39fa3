package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// ErrMalformedRule is the cause of every diagnostic about a rule line the parser skipped.
	ErrMalformedRule = newSyntaxError("malformed rule")

	synErrInvalidToken = newSyntaxError("invalid token")
)

const (
	detailNoSeparator  = "a rule needs a separator (->, ::=, =)"
	detailNoLHS        = "a rule needs a left-hand side"
	detailMultipleLHSs = "a left-hand side must be a single symbol"
)
