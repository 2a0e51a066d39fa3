package derivation

import "github.com/nihei9/ambig/grammar"

type DerivationError struct {
	message string
}

func newDerivationError(message string) *DerivationError {
	return &DerivationError{
		message: message,
	}
}

func (e *DerivationError) Error() string {
	return e.message
}

var (
	ErrInvalidForm       = newDerivationError("invalid sentential form")
	ErrNotExpandable     = newDerivationError("the symbol cannot be expanded")
	ErrNoSuchAlternative = newDerivationError("no such alternative")

	// ErrRecursionLimit is shared with the grammar package so that one errors.Is check covers every bound.
	ErrRecursionLimit = grammar.ErrRecursionLimit
)
