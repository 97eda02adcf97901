// Package errors defines the coded errors returned by the workbook data layer.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Predefined error codes
const (
	CodeNotFound        = "NOT_FOUND"
	CodeIOFailure       = "IO_FAILURE"
	CodeRangeError      = "RANGE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeInternalError   = "INTERNAL_ERROR"
)

// AppError is a coded error, optionally scoped to a sheet.
type AppError struct {
	Code    string
	Message string
	// Sheet is the sheet the failure relates to, if any.
	Sheet string
	Cause error
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.Sheet != "" {
		msg = fmt.Sprintf("sheet %q: %s", e.Sheet, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a bare code sentinel (such as ErrNotFound)
// carrying the same code as e.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Message != "" || t.Sheet != "" || t.Cause != nil {
		return e == t
	}
	return e.Code == t.Code
}

// Code sentinels for use with errors.Is.
var (
	ErrNotFound   = &AppError{Code: CodeNotFound}
	ErrIO         = &AppError{Code: CodeIOFailure}
	ErrRange      = &AppError{Code: CodeRangeError}
	ErrValidation = &AppError{Code: CodeValidationError}
	ErrConfig     = &AppError{Code: CodeConfigInvalid}
)

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. The code of a wrapped
// AppError is preserved; any other error becomes INTERNAL_ERROR.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the first AppError in err's chain, or "UNKNOWN".
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Common error constructors

func FileNotFound(path string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("workbook file not found: %s", path))
}

func SheetNotFound(sheet string) *AppError {
	return &AppError{Code: CodeNotFound, Message: "sheet not found", Sheet: sheet}
}

func ColumnNotFound(sheet, column string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("column %q not found", column), Sheet: sheet}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func IOFailure(message string, cause error) *AppError {
	return &AppError{Code: CodeIOFailure, Message: message, Cause: cause}
}

// RowOutOfRange reports a row index outside [1, rowCount).
func RowOutOfRange(sheet string, rowIndex, rowCount int) *AppError {
	return &AppError{
		Code:    CodeRangeError,
		Message: fmt.Sprintf("invalid row index: %d (valid range 1..%d)", rowIndex, rowCount-1),
		Sheet:   sheet,
	}
}

func Validation(sheet, message string) *AppError {
	return &AppError{Code: CodeValidationError, Message: message, Sheet: sheet}
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
