package errors

import "fmt"

// AppError is a structured application error with a machine-readable code.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, preserving its code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	if appErr, ok := err.(*AppError); ok {
		code = appErr.Code
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if err is an AppError, otherwise "UNKNOWN".
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidSelection = "INVALID_SELECTION"
	CodeEmptyDataset     = "EMPTY_DATASET"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// ConfigInvalid flags a bad configuration value.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidInput flags a malformed request.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// InvalidSelection flags a column selection that does not exist in the
// current dataset. Recoverable: the user reselects and retries.
func InvalidSelection(column string) *AppError {
	return New(CodeInvalidSelection, fmt.Sprintf("column %q not found in dataset", column))
}

// EmptyDataset flags an operation that needs data before any was loaded.
func EmptyDataset(message string) *AppError {
	return New(CodeEmptyDataset, message)
}

// DatabaseError flags a failure in the optional upload ledger.
func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}
