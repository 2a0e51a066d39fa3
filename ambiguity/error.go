package ambiguity

type CheckError struct {
	message string
}

func newCheckError(message string) *CheckError {
	return &CheckError{
		message: message,
	}
}

func (e *CheckError) Error() string {
	return e.message
}

var (
	ErrEmptyLanguage = newCheckError("the language generated by the grammar is empty")
	ErrUnknownStart  = newCheckError("unknown start symbol")
)
