package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	ErrEmptyAlternative = newSemanticError("an alternative must have at least one symbol")
	ErrEmptySymbolText  = newSemanticError("a symbol needs a non-empty name")
	ErrUnknownSymbol    = newSemanticError("unknown symbol")
	ErrFrozen           = newSemanticError("the grammar is frozen; no symbol or alternative can be added")
	ErrUndefinedSymbol  = newSemanticError("undefined symbol; a symbol that looks like a nonterminal has no rule")
	ErrNoRule           = newSemanticError("a grammar needs at least one rule")
	ErrRecursionLimit   = newSemanticError("recursion limit exceeded")
)
