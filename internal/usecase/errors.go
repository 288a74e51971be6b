package usecase

// DomainError marks failures that belong to the business rules: the request
// was understood but the record set cannot accept it.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError marks infrastructure failures (database down, broker
// unreachable) that the caller can only retry or report.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// Error codes surfaced to HTTP handlers.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeSizeLimit     = "SIZE_LIMIT_EXCEEDED"
	CodeMalformedCSV  = "MALFORMED_CSV"
	CodeDatabaseError = "DATABASE_ERROR"
)
